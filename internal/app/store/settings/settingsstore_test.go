package settingsstore

import (
	"testing"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
)

func TestStore_Load_DefaultSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Load settings when none exist - should return defaults
	settings, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := models.DefaultSiteSettings()
	if settings.CompanyName != want.CompanyName {
		t.Errorf("Load() default CompanyName = %q, want %q", settings.CompanyName, want.CompanyName)
	}
	if settings.MetaTitle != want.MetaTitle {
		t.Errorf("Load() default MetaTitle = %q, want %q", settings.MetaTitle, want.MetaTitle)
	}
}

func TestStore_Set_And_Load(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Set(ctx, models.SettingPhone, "(714) 555-0100"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, models.SettingThemeMode, models.ThemeDark); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "legacy_widget", "ignored"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	settings, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.Phone != "(714) 555-0100" {
		t.Errorf("Load() Phone = %q, want %q", settings.Phone, "(714) 555-0100")
	}
	if settings.Theme() != models.ThemeDark {
		t.Errorf("Load() Theme = %q, want dark", settings.Theme())
	}
	if settings.CompanyName != models.DefaultCompanyName {
		t.Errorf("Load() CompanyName = %q, want default", settings.CompanyName)
	}
}

func TestStore_Set_Overwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = store.Set(ctx, models.SettingTagline, "first")
	if err := store.Set(ctx, models.SettingTagline, "second"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, found, err := store.Get(ctx, models.SettingTagline)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "second" {
		t.Errorf("Get() = %q, %v; want second, true", value, found)
	}

	rows, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("All() returned %d rows, want 1", len(rows))
	}
}

func TestStore_Get_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, found, err := store.Get(ctx, models.SettingEmail)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for a missing key")
	}
}

func TestStore_SeedDefaults_KeepsExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = store.Set(ctx, models.SettingCompanyName, "Custom Co")

	defaults := models.DefaultSiteSettings().Pairs()
	added, err := store.SeedDefaults(ctx, defaults)
	if err != nil {
		t.Fatalf("SeedDefaults() error = %v", err)
	}
	if added != len(defaults)-1 {
		t.Errorf("SeedDefaults() added = %d, want %d", added, len(defaults)-1)
	}

	again, err := store.SeedDefaults(ctx, defaults)
	if err != nil {
		t.Fatalf("SeedDefaults() second call error = %v", err)
	}
	if again != 0 {
		t.Errorf("SeedDefaults() second call added = %d, want 0", again)
	}

	settings, _ := store.Load(ctx)
	if settings.CompanyName != "Custom Co" {
		t.Errorf("CompanyName = %q, want the existing value kept", settings.CompanyName)
	}
}

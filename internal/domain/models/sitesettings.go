// internal/domain/models/sitesettings.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSetting is one key/value row in the site_settings collection.
type SiteSetting struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"key" json:"key"`
	Value     string             `bson:"value" json:"value"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SiteSettings is the typed view of the key/value rows layered over
// DefaultSiteSettings.
type SiteSettings struct {
	CompanyName     string
	Tagline         string
	Phone           string
	Email           string
	Address         string
	ZipCode         string
	Facebook        string
	Twitter         string
	LinkedIn        string
	MetaTitle       string
	MetaDescription string
	ThemeMode       string // light, dark
	AssetVersion    string
	GoogleFontsURL  string
	LogoPath        string
	FooterText      string
}

// Setting keys
const (
	SettingCompanyName     = "company_name"
	SettingTagline         = "tagline"
	SettingPhone           = "phone"
	SettingEmail           = "email"
	SettingAddress         = "address"
	SettingZipCode         = "zip_code"
	SettingFacebook        = "facebook"
	SettingTwitter         = "twitter"
	SettingLinkedIn        = "linkedin"
	SettingMetaTitle       = "meta_title"
	SettingMetaDescription = "meta_description"
	SettingThemeMode       = "theme_mode"
	SettingAssetVersion    = "asset_version"
	SettingGoogleFontsURL  = "google_fonts_url"
	SettingLogoPath        = "logo_path"
	SettingFooterText      = "footer_text"
)

// Theme modes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultCompanyName is used when settings don't exist.
const DefaultCompanyName = "Right On Repair"

// DefaultSiteSettings returns the built-in values used before any row is stored.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		CompanyName:     DefaultCompanyName,
		Tagline:         "Orange County managed IT, cybersecurity, cloud, software, web, and technical repair services",
		Phone:           "+1 (562) 542-5899",
		Email:           "info@rightonrepair.com",
		Address:         "9092 Talbert Ave. Ste 4, Fountain Valley, CA 92708",
		ZipCode:         "92708",
		Facebook:        "https://facebook.com",
		Twitter:         "https://twitter.com",
		LinkedIn:        "https://linkedin.com",
		MetaTitle:       "Right On Repair | Orange County IT Services & Computer Repair",
		MetaDescription: "Orange County IT services and technical repair: managed IT, cybersecurity, cloud migration, software and web development, surveillance setup, and same-day device repair support for local businesses.",
		ThemeMode:       ThemeLight,
		AssetVersion:    "dev",
		FooterText:      "© 2024 Right On Repair. All rights reserved.",
	}
}

// Apply sets the field named by key. Unknown keys are ignored and reported
// as false.
func (s *SiteSettings) Apply(key, value string) bool {
	switch key {
	case SettingCompanyName:
		s.CompanyName = value
	case SettingTagline:
		s.Tagline = value
	case SettingPhone:
		s.Phone = value
	case SettingEmail:
		s.Email = value
	case SettingAddress:
		s.Address = value
	case SettingZipCode:
		s.ZipCode = value
	case SettingFacebook:
		s.Facebook = value
	case SettingTwitter:
		s.Twitter = value
	case SettingLinkedIn:
		s.LinkedIn = value
	case SettingMetaTitle:
		s.MetaTitle = value
	case SettingMetaDescription:
		s.MetaDescription = value
	case SettingThemeMode:
		s.ThemeMode = value
	case SettingAssetVersion:
		s.AssetVersion = value
	case SettingGoogleFontsURL:
		s.GoogleFontsURL = value
	case SettingLogoPath:
		s.LogoPath = value
	case SettingFooterText:
		s.FooterText = strings.ReplaceAll(value, "&copy;", "©")
	default:
		return false
	}
	return true
}

// Pairs returns the settings as key/value pairs for seeding.
func (s SiteSettings) Pairs() map[string]string {
	return map[string]string{
		SettingCompanyName:     s.CompanyName,
		SettingTagline:         s.Tagline,
		SettingPhone:           s.Phone,
		SettingEmail:           s.Email,
		SettingAddress:         s.Address,
		SettingZipCode:         s.ZipCode,
		SettingFacebook:        s.Facebook,
		SettingTwitter:         s.Twitter,
		SettingLinkedIn:        s.LinkedIn,
		SettingMetaTitle:       s.MetaTitle,
		SettingMetaDescription: s.MetaDescription,
		SettingThemeMode:       s.ThemeMode,
		SettingAssetVersion:    s.AssetVersion,
		SettingFooterText:      s.FooterText,
	}
}

// Theme returns ThemeMode when it is "dark" or "light", otherwise "light".
func (s SiteSettings) Theme() string {
	switch strings.ToLower(strings.TrimSpace(s.ThemeMode)) {
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeLight
	}
}

// PhoneDial returns Phone with spaces, parentheses, and dashes removed,
// suitable for a tel: link.
func (s SiteSettings) PhoneDial() string {
	return strings.NewReplacer(" ", "", "(", "", ")", "", "-", "").Replace(s.Phone)
}

// SocialLinks returns the non-empty social profile URLs.
func (s SiteSettings) SocialLinks() []string {
	var out []string
	for _, u := range []string{s.Facebook, s.Twitter, s.LinkedIn} {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// HasLogo returns true if a logo has been uploaded.
func (s SiteSettings) HasLogo() bool {
	return s.LogoPath != ""
}

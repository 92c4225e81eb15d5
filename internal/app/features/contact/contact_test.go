package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/flash"
	"github.com/dalemusser/rightonrepair/internal/app/system/formguard"
	"github.com/dalemusser/rightonrepair/internal/app/system/mailer"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
	"go.uber.org/zap"
)

type fakeSubs struct {
	saved []models.ContactSubmission
	err   error
}

func (f *fakeSubs) Create(_ context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	if f.err != nil {
		return models.ContactSubmission{}, f.err
	}
	f.saved = append(f.saved, sub)
	return sub, nil
}

type fakeNotifier struct {
	sent []mailer.Email
	err  error
}

func (f *fakeNotifier) Enabled() bool { return true }

func (f *fakeNotifier) Send(e mailer.Email) error {
	f.sent = append(f.sent, e)
	return f.err
}

type fakeRecorder struct {
	submissions []string
	throttled   []string
}

func (f *fakeRecorder) RecordSubmission(form, outcome string) {
	f.submissions = append(f.submissions, form+":"+outcome)
}

func (f *fakeRecorder) RecordThrottled(limiter string) {
	f.throttled = append(f.throttled, limiter)
}

type fakeFlash struct {
	msgs []flash.Message
}

func (f *fakeFlash) Success(_ http.ResponseWriter, _ *http.Request, text string) {
	f.msgs = append(f.msgs, flash.Message{Kind: flash.KindSuccess, Text: text})
}

func (f *fakeFlash) Error(_ http.ResponseWriter, _ *http.Request, text string) {
	f.msgs = append(f.msgs, flash.Message{Kind: flash.KindError, Text: text})
}

func (f *fakeFlash) Pop(http.ResponseWriter, *http.Request) []flash.Message {
	out := f.msgs
	f.msgs = nil
	return out
}

type denyAll struct{}

func (denyAll) CheckAllowed(context.Context, string) (bool, int, *time.Time) {
	until := time.Now().Add(time.Minute)
	return false, 0, &until
}

func (denyAll) RecordAttempt(context.Context, string) (bool, *time.Time) { return true, nil }

type fixture struct {
	h     *Handler
	subs  *fakeSubs
	mail  *fakeNotifier
	rec   *fakeRecorder
	flash *fakeFlash
}

func newFixture(guard *formguard.Guard) fixture {
	f := fixture{
		subs:  &fakeSubs{},
		mail:  &fakeNotifier{},
		rec:   &fakeRecorder{},
		flash: &fakeFlash{},
	}
	f.h = NewHandler(f.subs, guard, f.mail, "office@example.com", f.flash, f.rec, zap.NewNop())
	return f
}

func postForm(path string, vals url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "203.0.113.9:4000"
	return testutil.WithCSRFToken(req)
}

func TestBuildForm(t *testing.T) {
	r := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/contact", nil))

	vm := buildForm(r, contactForm, Values{})
	if vm.Values.Subject != defaultSubject {
		t.Errorf("Subject = %q, want %q", vm.Values.Subject, defaultSubject)
	}
	if vm.Title != "Contact Us | Right On Repair" {
		t.Errorf("Title = %q", vm.Title)
	}
	if !vm.ShowContactBox || vm.ServiceTypes != nil || vm.DeviceTypes != nil {
		t.Errorf("contact vm = %+v", vm)
	}

	q := buildForm(r, quoteForm, Values{})
	if len(q.ServiceTypes) != len(ServiceTypes) || q.ShowContactBox {
		t.Errorf("quote ServiceTypes = %v", q.ServiceTypes)
	}
	if q.Values.Subject != "" {
		t.Errorf("quote Subject = %q, want empty", q.Values.Subject)
	}

	p := buildForm(r, personalForm, Values{})
	if len(p.DeviceTypes) != len(DeviceTypes) {
		t.Errorf("personal DeviceTypes = %v", p.DeviceTypes)
	}
	if p.MetaDescription != personalForm.Description {
		t.Errorf("MetaDescription = %q", p.MetaDescription)
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		name string
		in   Values
		want string
	}{
		{"valid", Values{Name: "Ann", Email: "ann@example.com", Message: "Hi"}, ""},
		{"blank", Values{}, MsgRequired},
		{"missing message", Values{Name: "Ann", Email: "ann@example.com"}, MsgRequired},
		{"bad email", Values{Name: "Ann", Email: "not-an-email", Message: "Hi"}, MsgInvalidEmail},
	}
	for _, tt := range tests {
		if got := validationMessage(tt.in); got != tt.want {
			t.Errorf("%s: validationMessage = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSubjectFor(t *testing.T) {
	tests := []struct {
		f    form
		v    Values
		want string
	}{
		{contactForm, Values{}, "General Inquiry"},
		{contactForm, Values{Subject: "Laptop Repair"}, "Laptop Repair"},
		{quoteForm, Values{ServiceType: "Cybersecurity"}, "Quote Request: Cybersecurity"},
		{quoteForm, Values{}, "Quote Request: Other"},
		{personalForm, Values{DeviceType: "Phone"}, "Personal Quote: Phone"},
	}
	for _, tt := range tests {
		if got := subjectFor(tt.f, tt.v); got != tt.want {
			t.Errorf("subjectFor(%s, %+v) = %q, want %q", tt.f.Type, tt.v, got, tt.want)
		}
	}
}

func TestSubmitQuote_Accepted(t *testing.T) {
	f := newFixture(nil)
	rec := httptest.NewRecorder()
	f.h.SubmitQuote(rec, postForm("/request-quote", url.Values{
		"name":         {"  Ann Lee "},
		"email":        {"Ann@Example.com"},
		"company":      {"Lee Dental"},
		"service_type": {"Managed IT"},
		"message":      {"Need help with 12 workstations."},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/request-quote" {
		t.Errorf("Location = %q, want /request-quote", loc)
	}
	if len(f.subs.saved) != 1 {
		t.Fatalf("saved %d submissions, want 1", len(f.subs.saved))
	}
	sub := f.subs.saved[0]
	if sub.FormType != models.FormTypeBusinessQuote || sub.Subject != "Quote Request: Managed IT" {
		t.Errorf("submission = %+v", sub)
	}
	if sub.Name != "Ann Lee" || sub.Email != "ann@example.com" {
		t.Errorf("name/email = %q/%q, want trimmed and normalized", sub.Name, sub.Email)
	}
	if sub.IPAddress != "203.0.113.9" || sub.UserAgent != "test-agent" {
		t.Errorf("ip/ua = %q/%q", sub.IPAddress, sub.UserAgent)
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0].ReplyTo != "ann@example.com" || f.mail.sent[0].To != "office@example.com" {
		t.Errorf("sent = %+v", f.mail.sent)
	}
	if len(f.flash.msgs) != 1 || f.flash.msgs[0].Text != MsgQuoteSent {
		t.Errorf("flash = %+v", f.flash.msgs)
	}
	if strings.Join(f.rec.submissions, ",") != "business_quote:accepted" {
		t.Errorf("metrics = %v", f.rec.submissions)
	}
}

func TestSubmitContact_InsertFailureStillSucceeds(t *testing.T) {
	f := newFixture(nil)
	f.subs.err = errors.New("mongo down")
	f.mail.err = errors.New("smtp down")

	rec := httptest.NewRecorder()
	f.h.SubmitContact(rec, postForm("/contact", url.Values{
		"name":    {"Bo"},
		"email":   {"bo@example.com"},
		"message": {"Call me"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(f.flash.msgs) != 1 || f.flash.msgs[0].IsError() {
		t.Errorf("flash = %+v, want one success", f.flash.msgs)
	}
}

func TestSubmitContact_InvalidRerenders(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(nil)

	rec := httptest.NewRecorder()
	f.h.SubmitContact(rec, postForm("/contact", url.Values{
		"name":  {"Bo"},
		"email": {"bo@example.com"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, MsgRequired) {
		t.Error("body missing the required-fields message")
	}
	if !strings.Contains(body, `value="bo@example.com"`) {
		t.Error("body does not echo the email")
	}
	if len(f.subs.saved) != 0 {
		t.Errorf("saved %d submissions, want 0", len(f.subs.saved))
	}
	if strings.Join(f.rec.submissions, ",") != "contact:invalid" {
		t.Errorf("metrics = %v", f.rec.submissions)
	}
}

func TestSubmitPersonalQuote_Throttled(t *testing.T) {
	f := newFixture(formguard.New(denyAll{}, zap.NewNop()))

	rec := httptest.NewRecorder()
	f.h.SubmitPersonalQuote(rec, postForm("/request-quote/personal", url.Values{
		"name":    {"Cy"},
		"email":   {"cy@example.com"},
		"message": {"Cracked screen"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(f.subs.saved) != 0 {
		t.Errorf("saved %d submissions, want 0", len(f.subs.saved))
	}
	if len(f.flash.msgs) != 1 || !f.flash.msgs[0].IsError() {
		t.Errorf("flash = %+v, want one error", f.flash.msgs)
	}
	if len(f.rec.throttled) != 1 {
		t.Errorf("throttled = %v", f.rec.throttled)
	}
}

func TestContact_ShowsFlashAndSubject(t *testing.T) {
	testutil.MustBootTemplates(t)
	f := newFixture(nil)
	f.flash.msgs = []flash.Message{{Kind: flash.KindSuccess, Text: MsgContactSent}}

	rec := httptest.NewRecorder()
	req := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/contact?subject=Laptop+Repair", nil))
	f.h.Contact(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="Laptop Repair"`) {
		t.Error("body missing the pre-filled subject")
	}
	if !strings.Contains(body, "Thank you for contacting us!") {
		t.Error("body missing the flashed message")
	}
}

// internal/app/features/contact/contact.go
package contact

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/flash"
	"github.com/dalemusser/rightonrepair/internal/app/system/formguard"
	"github.com/dalemusser/rightonrepair/internal/app/system/formutil"
	"github.com/dalemusser/rightonrepair/internal/app/system/inputval"
	"github.com/dalemusser/rightonrepair/internal/app/system/mailer"
	"github.com/dalemusser/rightonrepair/internal/app/system/network"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultSubject = "General Inquiry"

// Messages shown after a submission.
const (
	MsgRequired     = "Please fill in all required fields."
	MsgInvalidEmail = "Please provide a valid email address."
	MsgContactSent  = "Thank you for contacting us! We'll get back to you within one business day."
	MsgQuoteSent    = "Thank you for your quote request! We'll prepare a detailed proposal and contact you within 24 hours."
	MsgPersonalSent = "Thank you! We'll review your device details and contact you with a repair quote shortly."
)

// Outcomes recorded per submission.
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeThrottled = "throttled"
)

// ServiceTypes are the business quote service options.
var ServiceTypes = []string{"Managed IT", "Cybersecurity", "Cloud Solutions", "Software Development", "Technical Repair", "Other"}

// DeviceTypes are the personal quote device options.
var DeviceTypes = []string{"Laptop", "Desktop", "Phone", "Tablet", "Other"}

// SubmissionStore persists leads.
type SubmissionStore interface {
	Create(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error)
}

// Notifier delivers office notification email.
type Notifier interface {
	Enabled() bool
	Send(email mailer.Email) error
}

// Recorder counts submissions by form and outcome.
type Recorder interface {
	RecordSubmission(form, outcome string)
	RecordThrottled(limiter string)
}

// Flasher carries one-shot notices across the post/redirect/get cycle.
type Flasher interface {
	Success(w http.ResponseWriter, r *http.Request, text string)
	Error(w http.ResponseWriter, r *http.Request, text string)
	Pop(w http.ResponseWriter, r *http.Request) []flash.Message
}

// Handler serves the contact and quote forms.
type Handler struct {
	subs     SubmissionStore
	guard    *formguard.Guard
	notifier Notifier
	notifyTo string
	flash    Flasher
	metrics  Recorder
	logger   *zap.Logger
}

// NewHandler creates a contact Handler. notifier and metrics may be nil.
func NewHandler(subs SubmissionStore, guard *formguard.Guard, notifier Notifier, notifyTo string, flasher Flasher, metrics Recorder, logger *zap.Logger) *Handler {
	return &Handler{
		subs:     subs,
		guard:    guard,
		notifier: notifier,
		notifyTo: strings.TrimSpace(notifyTo),
		flash:    flasher,
		metrics:  metrics,
		logger:   logger,
	}
}

// form describes one of the lead forms.
type form struct {
	Type        string
	Template    string
	Path        string
	Label       string
	Title       string
	Heading     string
	Lead        string
	Description string
	Success     string
}

var (
	contactForm = form{
		Type:        models.FormTypeContact,
		Template:    "contact/contact",
		Path:        "/contact",
		Label:       "Contact",
		Title:       "Contact Us",
		Heading:     "Get In Touch",
		Lead:        "Tell us what you need and we'll respond within one business day.",
		Description: "Contact Right On Repair for IT support, technical repairs, or a free consultation. Serving Orange County businesses with fast, reliable service.",
		Success:     MsgContactSent,
	}
	quoteForm = form{
		Type:        models.FormTypeBusinessQuote,
		Template:    "contact/quote",
		Path:        "/request-quote",
		Label:       "Business Quote",
		Title:       "Request a Quote",
		Heading:     "Request a Business Quote",
		Lead:        "Tell us about your business and we'll send a detailed proposal within 24 hours.",
		Description: "Request a free business IT quote from Right On Repair. Managed IT, cybersecurity, cloud, and development services for Orange County businesses.",
		Success:     MsgQuoteSent,
	}
	personalForm = form{
		Type:        models.FormTypePersonalQuote,
		Template:    "contact/personal_quote",
		Path:        "/request-quote/personal",
		Label:       "Personal Quote",
		Title:       "Personal Repair Quote",
		Heading:     "Personal Device Repair Quote",
		Lead:        "Describe the problem with your device and we'll get back to you with a repair estimate.",
		Description: "Request a personal device repair quote. Fast laptops, phones, tablets, and desktop repairs in Orange County.",
		Success:     MsgPersonalSent,
	}
)

// Values echoes the visitor's input back into the form.
type Values struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	Subject     string
	ServiceType string
	DeviceType  string
	Message     string
}

// FormVM is the view model shared by the three forms.
type FormVM struct {
	formutil.Base
	Heading        string
	Lead           string
	Action         string
	Values         Values
	ServiceTypes   []string
	DeviceTypes    []string
	QuoteURL       string
	RemoteURL      string
	ShowContactBox bool
}

// leadInput is validated on submit. Required fields come before the email
// format check so a blank form reports the missing fields first.
type leadInput struct {
	Name    string `json:"name" validate:"required" label:"Name"`
	Message string `json:"message" validate:"required" label:"Message"`
	Email   string `json:"email" validate:"required,email" label:"Email"`
}

// Routes registers the form routes on r at their absolute paths.
func Routes(r chi.Router, h *Handler) {
	r.Get(contactForm.Path, h.Contact)
	r.Post(contactForm.Path, h.SubmitContact)
	r.Get(quoteForm.Path, h.Quote)
	r.Post(quoteForm.Path, h.SubmitQuote)
	r.Get(personalForm.Path, h.PersonalQuote)
	r.Post(personalForm.Path, h.SubmitPersonalQuote)
}

// Contact renders the contact form. ?subject pre-fills the hidden subject.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	v := Values{Subject: normalize.Field(r.URL.Query().Get("subject"), normalize.MaxShortField)}
	h.show(w, r, contactForm, v)
}

// Quote renders the business quote form.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, quoteForm, Values{})
}

// PersonalQuote renders the personal repair quote form.
func (h *Handler) PersonalQuote(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, personalForm, Values{})
}

// SubmitContact handles the contact form.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, contactForm)
}

// SubmitQuote handles the business quote form.
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, quoteForm)
}

// SubmitPersonalQuote handles the personal repair quote form.
func (h *Handler) SubmitPersonalQuote(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, personalForm)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, f form, v Values) {
	vm := buildForm(r, f, v)
	vm.Flash = h.flash.Pop(w, r)
	templates.Render(w, r, f.Template, vm)
}

func buildForm(r *http.Request, f form, v Values) FormVM {
	if f.Type == models.FormTypeContact && v.Subject == "" {
		v.Subject = defaultSubject
	}
	vm := FormVM{
		Base:           formutil.NewBase(r, ""),
		Heading:        f.Heading,
		Lead:           f.Lead,
		Action:         f.Path,
		Values:         v,
		QuoteURL:       quoteForm.Path,
		RemoteURL:      "/remote-support",
		ShowContactBox: f.Type == models.FormTypeContact,
	}
	vm.SetTitle(f.Title)
	vm.SetMeta(f.Description, "")
	switch f.Type {
	case models.FormTypeBusinessQuote:
		vm.ServiceTypes = ServiceTypes
	case models.FormTypePersonalQuote:
		vm.DeviceTypes = DeviceTypes
	}
	return vm
}

// readValues trims and caps the posted fields.
func readValues(r *http.Request) Values {
	return Values{
		Name:        normalize.Field(r.PostFormValue("name"), normalize.MaxShortField),
		Email:       normalize.Email(normalize.Truncate(r.PostFormValue("email"), normalize.MaxShortField)),
		Phone:       normalize.Field(r.PostFormValue("phone"), normalize.MaxPhone),
		Company:     normalize.Field(r.PostFormValue("company"), normalize.MaxShortField),
		Subject:     normalize.Field(r.PostFormValue("subject"), normalize.MaxShortField),
		ServiceType: normalize.Field(r.PostFormValue("service_type"), normalize.MaxShortField),
		DeviceType:  normalize.Field(r.PostFormValue("device_type"), normalize.MaxShortField),
		Message:     normalize.Field(r.PostFormValue("message"), normalize.MaxMessage),
	}
}

// validationMessage maps a failed validation to the message shown above
// the form.
func validationMessage(v Values) string {
	res := inputval.Validate(leadInput{Name: v.Name, Message: v.Message, Email: v.Email})
	switch {
	case res == nil || !res.HasErrors():
		return ""
	case res.Failed("required"):
		return MsgRequired
	case res.Failed("email"):
		return MsgInvalidEmail
	}
	return res.First()
}

// subjectFor derives the stored subject for a form.
func subjectFor(f form, v Values) string {
	switch f.Type {
	case models.FormTypeBusinessQuote:
		return "Quote Request: " + orOther(v.ServiceType)
	case models.FormTypePersonalQuote:
		return "Personal Quote: " + orOther(v.DeviceType)
	}
	if v.Subject == "" {
		return defaultSubject
	}
	return v.Subject
}

func orOther(s string) string {
	if s == "" {
		return "Other"
	}
	return s
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, f form) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("form parse failed", zap.String("form", f.Type), zap.Error(err))
	}

	if !h.guard.Allow(r, f.Type) {
		h.record(f.Type, OutcomeThrottled)
		if h.metrics != nil {
			h.metrics.RecordThrottled("form")
		}
		h.flash.Error(w, r, formguard.ThrottledMessage)
		http.Redirect(w, r, f.Path, http.StatusSeeOther)
		return
	}

	v := readValues(r)
	if msg := validationMessage(v); msg != "" {
		h.record(f.Type, OutcomeInvalid)
		vm := buildForm(r, f, v)
		vm.SetError(msg)
		templates.Render(w, r, f.Template, vm)
		return
	}

	h.guard.Record(r, f.Type)

	sub := models.ContactSubmission{
		FormType:    f.Type,
		Name:        v.Name,
		Email:       v.Email,
		Phone:       v.Phone,
		Company:     v.Company,
		Subject:     subjectFor(f, v),
		Message:     v.Message,
		ServiceType: v.ServiceType,
		DeviceType:  v.DeviceType,
		IPAddress:   network.GetClientIP(r),
		UserAgent:   normalize.Field(r.UserAgent(), normalize.MaxUserAgent),
		CreatedAt:   time.Now().UTC(),
	}
	// A failed insert is logged; the visitor still sees the thank-you.
	if _, err := h.subs.Create(r.Context(), sub); err != nil {
		h.logger.Error("contact submission insert failed",
			zap.String("form", f.Type),
			zap.String("email", sub.Email),
			zap.Error(err))
	}

	h.notify(r, f, sub)
	h.record(f.Type, OutcomeAccepted)
	h.flash.Success(w, r, f.Success)
	http.Redirect(w, r, f.Path, http.StatusSeeOther)
}

func (h *Handler) record(form, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSubmission(form, outcome)
	}
}

// notify emails the office. Failures are logged only.
func (h *Handler) notify(r *http.Request, f form, sub models.ContactSubmission) {
	if h.notifier == nil || !h.notifier.Enabled() || h.notifyTo == "" {
		return
	}
	subject, text, html := mailer.LeadNotificationEmail(mailer.LeadEmailData{
		CompanyName: sitectx.From(r.Context()).Settings.CompanyName,
		FormLabel:   f.Label,
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Company:     sub.Company,
		Subject:     sub.Subject,
		ServiceType: sub.ServiceType,
		DeviceType:  sub.DeviceType,
		Message:     sub.Message,
		IPAddress:   sub.IPAddress,
	})
	err := h.notifier.Send(mailer.Email{
		To:       h.notifyTo,
		ReplyTo:  sub.Email,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
	if err != nil {
		h.logger.Warn("lead notification failed", zap.String("form", f.Type), zap.Error(err))
	}
}

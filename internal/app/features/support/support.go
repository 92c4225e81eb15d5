// internal/app/features/support/support.go
package support

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	"github.com/dalemusser/rightonrepair/internal/app/system/flash"
	"github.com/dalemusser/rightonrepair/internal/app/system/formguard"
	"github.com/dalemusser/rightonrepair/internal/app/system/formutil"
	"github.com/dalemusser/rightonrepair/internal/app/system/inputval"
	"github.com/dalemusser/rightonrepair/internal/app/system/mailer"
	"github.com/dalemusser/rightonrepair/internal/app/system/network"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// FormType keys the remote support form in the rate limiter and metrics.
const FormType = "remote_support"

const (
	subjectLimit     = 200
	numberAttempts   = 5
	createdFormat    = "Jan 2, 2006"
	eventTimeFormat  = "Jan 2, 2006 3:04 PM"
	ticketOpenedNote = "Ticket opened via the remote support form."
)

// Messages shown after a submission.
const (
	MsgRequired     = "Please fill in all required fields."
	MsgInvalidEmail = "Please provide a valid email address."
	MsgCreateFailed = "We couldn't create your ticket right now. Please call us so we can help."
)

// TicketStore persists support clients, tickets and their history.
type TicketStore interface {
	FindOrCreateClient(ctx context.Context, c models.SupportClient) (models.SupportClient, bool, error)
	OpenTicket(ctx context.Context, t models.SupportTicket, note string) (models.SupportTicket, error)
	GetByNumber(ctx context.Context, number string) (models.SupportTicket, error)
	Events(ctx context.Context, ticketID primitive.ObjectID) ([]models.SupportTicketEvent, error)
}

// LookupLimiter throttles ticket lookups per client address.
type LookupLimiter interface {
	Allow(key string) bool
	RetryAfter() int
}

// Notifier delivers office notification email.
type Notifier interface {
	Enabled() bool
	Send(email mailer.Email) error
}

// Recorder counts submissions and throttled requests.
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

// Handler serves remote support and ticket lookup.
type Handler struct {
	tickets  TicketStore
	guard    *formguard.Guard
	lookups  LookupLimiter
	notifier Notifier
	notifyTo string
	flash    Flasher
	metrics  Recorder
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger

	newNumber func() (string, error)
}

// Options bundles the optional collaborators of a Handler.
type Options struct {
	Guard    *formguard.Guard
	Lookups  LookupLimiter
	Notifier Notifier
	NotifyTo string
	Metrics  Recorder
}

// NewHandler creates a support Handler.
func NewHandler(tickets TicketStore, flasher Flasher, opts Options, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		tickets:   tickets,
		guard:     opts.Guard,
		lookups:   opts.Lookups,
		notifier:  opts.Notifier,
		notifyTo:  strings.TrimSpace(opts.NotifyTo),
		flash:     flasher,
		metrics:   opts.Metrics,
		errLog:    errLog,
		logger:    logger,
		newNumber: NewTicketNumber,
	}
}

// Routes registers the support routes on r at their absolute paths.
func Routes(r chi.Router, h *Handler) {
	r.Get("/remote-support", h.RemoteSupport)
	r.Post("/remote-support", h.SubmitTicket)
	r.Get("/ticket-search", h.Search)
}

// Values echoes the visitor's input back into the form.
type Values struct {
	FullName string
	Email    string
	Company  string
	Phone    string
	Issue    string
}

// RemoteVM is the view model for the remote support page.
type RemoteVM struct {
	formutil.Base
	Values Values
}

// EventVM is one timeline entry.
type EventVM struct {
	When string
	Text string
}

// TicketVM is a ticket as shown to the visitor.
type TicketVM struct {
	Number      string
	Status      string
	StatusClass string
	Priority    string
	Created     string
	Subject     string
	Description string
	Events      []EventVM
}

// SearchVM is the view model for ticket lookup.
type SearchVM struct {
	viewdata.BaseVM
	Query    string
	Searched bool
	Ticket   *TicketVM
}

type ticketInput struct {
	FullName string `json:"full_name" validate:"required" label:"Full Name"`
	Issue    string `json:"issue_description" validate:"required" label:"Issue Description"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
}

// NewTicketNumber returns "RT-" followed by 8 random uppercase hex digits.
func NewTicketNumber() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("ticket number: %w", err)
	}
	return models.TicketPrefix + strings.ToUpper(hex.EncodeToString(b[:])), nil
}

// placeholderHash hashes a random secret so the client record carries a
// password nobody knows until a portal account is claimed.
func placeholderHash() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(b[:])), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RemoteSupport renders the ticket form.
func (h *Handler) RemoteSupport(w http.ResponseWriter, r *http.Request) {
	vm := buildRemote(r, Values{})
	vm.Flash = h.flash.Pop(w, r)
	templates.Render(w, r, "support/remote", vm)
}

func buildRemote(r *http.Request, v Values) RemoteVM {
	vm := RemoteVM{Base: formutil.NewBase(r, ""), Values: v}
	vm.SetTitle("Remote Support")
	vm.SetMeta("Get remote IT support from Right On Repair. Submit a support ticket and our technicians will connect to resolve your issue fast.", "")
	return vm
}

func readValues(r *http.Request) Values {
	return Values{
		FullName: normalize.Field(r.PostFormValue("full_name"), normalize.MaxShortField),
		Email:    normalize.Email(normalize.Truncate(r.PostFormValue("email"), normalize.MaxShortField)),
		Company:  normalize.Field(r.PostFormValue("company"), normalize.MaxShortField),
		Phone:    normalize.Field(r.PostFormValue("phone"), normalize.MaxPhone),
		Issue:    normalize.Field(r.PostFormValue("issue_description"), normalize.MaxMessage),
	}
}

func validationMessage(v Values) string {
	res := inputval.Validate(ticketInput{FullName: v.FullName, Issue: v.Issue, Email: v.Email})
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

// SubmitTicket creates a support ticket and flashes its number.
func (h *Handler) SubmitTicket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("form parse failed", zap.String("form", FormType), zap.Error(err))
	}

	if !h.guard.Allow(r, FormType) {
		h.record("throttled")
		if h.metrics != nil {
			h.metrics.RecordThrottled("form")
		}
		h.flash.Error(w, r, formguard.ThrottledMessage)
		http.Redirect(w, r, "/remote-support", http.StatusSeeOther)
		return
	}

	v := readValues(r)
	if msg := validationMessage(v); msg != "" {
		h.record("invalid")
		vm := buildRemote(r, v)
		vm.SetError(msg)
		templates.Render(w, r, "support/remote", vm)
		return
	}

	h.guard.Record(r, FormType)

	ticket, err := h.openTicket(r.Context(), v)
	if err != nil {
		h.errLog.LogWithFields(r, "failed to create support ticket", err, zap.String("email", v.Email))
		h.record("failed")
		h.flash.Error(w, r, MsgCreateFailed)
		http.Redirect(w, r, "/remote-support", http.StatusSeeOther)
		return
	}

	h.notify(r, ticket, v)
	h.record("accepted")
	h.flash.Success(w, r, "Your support ticket has been created! Ticket number: "+ticket.TicketNumber)
	http.Redirect(w, r, "/remote-support", http.StatusSeeOther)
}

// openTicket finds or creates the client, then opens the ticket under a
// fresh number along with its opening event.
func (h *Handler) openTicket(ctx context.Context, v Values) (models.SupportTicket, error) {
	hash, err := placeholderHash()
	if err != nil {
		return models.SupportTicket{}, fmt.Errorf("client password: %w", err)
	}
	client, created, err := h.tickets.FindOrCreateClient(ctx, models.SupportClient{
		Name:         v.FullName,
		Email:        v.Email,
		Company:      v.Company,
		Phone:        v.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		return models.SupportTicket{}, fmt.Errorf("find or create client: %w", err)
	}
	if created {
		h.logger.Info("support client created", zap.String("email", client.Email))
	}

	var ticket models.SupportTicket
	for attempt := 1; ; attempt++ {
		number, err := h.newNumber()
		if err != nil {
			return models.SupportTicket{}, err
		}
		ticket, err = h.tickets.OpenTicket(ctx, models.SupportTicket{
			TicketNumber: number,
			ClientID:     client.ID,
			Subject:      normalize.Truncate(v.Issue, subjectLimit),
			Description:  v.Issue,
			Status:       models.TicketStatusOpen,
			Priority:     models.TicketPriorityNormal,
		}, ticketOpenedNote)
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) || attempt >= numberAttempts {
			return models.SupportTicket{}, fmt.Errorf("create ticket: %w", err)
		}
		h.logger.Debug("ticket number collision, retrying", zap.String("number", number))
	}

	return ticket, nil
}

func (h *Handler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordSubmission(FormType, outcome)
	}
}

func (h *Handler) notify(r *http.Request, t models.SupportTicket, v Values) {
	if h.notifier == nil || !h.notifier.Enabled() || h.notifyTo == "" {
		return
	}
	site := sitectx.From(r.Context())
	subject, text, html := mailer.TicketNotificationEmail(mailer.TicketEmailData{
		CompanyName:  site.Settings.CompanyName,
		TicketNumber: t.TicketNumber,
		Name:         v.FullName,
		Email:        v.Email,
		Phone:        v.Phone,
		Company:      v.Company,
		Issue:        v.Issue,
		LookupURL:    site.AbsURL("/ticket-search?ticket_number=" + t.TicketNumber),
	})
	err := h.notifier.Send(mailer.Email{
		To:       h.notifyTo,
		ReplyTo:  v.Email,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
	if err != nil {
		h.logger.Warn("ticket notification failed", zap.String("number", t.TicketNumber), zap.Error(err))
	}
}

// Search looks up a ticket by number. Lookups are throttled per client
// address; an empty query only renders the form.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	raw := normalize.Field(r.URL.Query().Get("ticket_number"), normalize.MaxTicket)
	number := normalize.TicketNumber(raw)

	if number != "" && h.lookups != nil && !h.lookups.Allow(network.GetClientIP(r)) {
		if h.metrics != nil {
			h.metrics.RecordThrottled("ticket_lookup")
		}
		w.Header().Set("Retry-After", strconv.Itoa(h.lookups.RetryAfter()))
		http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
		return
	}

	vm, err := h.buildSearch(r, raw, number)
	if err != nil {
		h.errLog.Log(r, "ticket lookup failed", err)
		errorsfeature.InternalError(w, r)
		return
	}
	templates.Render(w, r, "support/search", vm)
}

func (h *Handler) buildSearch(r *http.Request, raw, number string) (SearchVM, error) {
	vm := SearchVM{
		BaseVM:   viewdata.New(r, ""),
		Query:    raw,
		Searched: raw != "",
	}
	vm.SetTitle("Track Support Ticket")
	vm.SetMeta("Track your support ticket status with Right On Repair.", "")
	vm.NoIndex()
	if number == "" {
		return vm, nil
	}

	ctx := r.Context()
	t, err := h.tickets.GetByNumber(ctx, number)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return vm, nil
	}
	if err != nil {
		return vm, err
	}

	events, err := h.tickets.Events(ctx, t.ID)
	if err != nil {
		h.logger.Warn("ticket events failed", zap.String("number", t.TicketNumber), zap.Error(err))
	}

	tv := &TicketVM{
		Number:      t.TicketNumber,
		Status:      models.TicketStatusLabel(t.Status),
		StatusClass: "ticket-status-" + t.Status,
		Priority:    titleCase(t.Priority),
		Created:     formatTime(t.CreatedAt, createdFormat),
		Subject:     t.Subject,
		Description: t.Description,
	}
	for _, e := range events {
		tv.Events = append(tv.Events, EventVM{When: formatTime(e.CreatedAt, eventTimeFormat), Text: eventText(e)})
	}
	vm.Ticket = tv
	return vm, nil
}

func eventText(e models.SupportTicketEvent) string {
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return titleCase(strings.ReplaceAll(e.EventType, "_", " "))
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

package mailer

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSend_NotConfigured(t *testing.T) {
	m := New(Config{}, zap.NewNop())
	if m.Enabled() {
		t.Error("Enabled() = true without a host")
	}
	if err := m.Send(Email{To: "office@example.com"}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Send() error = %v, want ErrNotConfigured", err)
	}
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587, From: "site@example.com", FromName: "Right On Repair"}, zap.NewNop())
	msg := string(m.buildMessage(Email{
		To:       "office@example.com",
		ReplyTo:  "visitor@example.com\r\nBcc: victim@example.com",
		Subject:  "Quote Request: Cloud\nX-Injected: yes",
		TextBody: "hello",
	}, "b"))

	if strings.Contains(msg, "\r\nBcc:") || strings.Contains(msg, "\r\nX-Injected:") {
		t.Errorf("message carries injected headers:\n%s", msg)
	}
	if !strings.Contains(msg, "Subject: Quote Request: Cloud X-Injected: yes\r\n") {
		t.Errorf("subject not flattened:\n%s", msg)
	}
	if !strings.Contains(msg, "From: Right On Repair <site@example.com>\r\n") {
		t.Errorf("missing From header:\n%s", msg)
	}
}

func TestBuildMessage_Multipart(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", From: "site@example.com"}, zap.NewNop())
	msg := string(m.buildMessage(Email{To: "a@example.com", Subject: "s", TextBody: "plain", HTMLBody: "<p>html</p>"}, "XYZ"))

	for _, want := range []string{
		`Content-Type: multipart/alternative; boundary="XYZ"`,
		"--XYZ\r\nContent-Type: text/plain",
		"--XYZ\r\nContent-Type: text/html",
		"--XYZ--",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestLeadNotificationEmail(t *testing.T) {
	subject, text, html := LeadNotificationEmail(LeadEmailData{
		CompanyName: "Right On Repair",
		FormLabel:   "Business Quote",
		Name:        "Jane <b>Doe</b>",
		Email:       "jane@example.com",
		ServiceType: "Cloud Solutions",
		Message:     "Need a migration plan.",
	})

	if subject != "New Business Quote submission from Jane <b>Doe</b>" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "Service: Cloud Solutions\n") || strings.Contains(text, "Phone:") {
		t.Errorf("text body = %q", text)
	}
	if strings.Contains(html, "<b>Doe</b>") {
		t.Error("HTML body does not escape the visitor name")
	}
	if !strings.Contains(html, "Need a migration plan.") {
		t.Error("HTML body is missing the message")
	}
}

func TestTicketNotificationEmail(t *testing.T) {
	subject, text, html := TicketNotificationEmail(TicketEmailData{
		CompanyName:  "Right On Repair",
		TicketNumber: "RT-0A1B2C3D",
		Name:         "Sam",
		Email:        "sam@example.com",
		Issue:        "Printer offline",
		LookupURL:    "https://rightonrepair.test/ticket-search?ticket=RT-0A1B2C3D",
	})

	if !strings.Contains(subject, "RT-0A1B2C3D") {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "Status page: https://rightonrepair.test/ticket-search?ticket=RT-0A1B2C3D") {
		t.Errorf("text body = %q", text)
	}
	if !strings.Contains(html, "View Ticket") {
		t.Error("HTML body is missing the lookup button")
	}
}

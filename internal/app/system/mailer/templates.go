// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"strings"
)

// LeadEmailData contains the data for an office notification about a
// contact or quote submission.
type LeadEmailData struct {
	CompanyName string
	FormLabel   string // "Contact", "Business Quote", "Personal Quote"
	Name        string
	Email       string
	Phone       string
	Company     string
	Subject     string
	ServiceType string
	DeviceType  string
	Message     string
	IPAddress   string
}

// LeadNotificationEmail generates both plain text and HTML versions of a new
// lead notification.
func LeadNotificationEmail(data LeadEmailData) (subject, textBody, htmlBody string) {
	subject = "New " + data.FormLabel + " submission from " + data.Name

	var t strings.Builder
	t.WriteString("A new " + data.FormLabel + " submission was received on " + data.CompanyName + ".\n\n")
	line(&t, "Name", data.Name)
	line(&t, "Email", data.Email)
	line(&t, "Phone", data.Phone)
	line(&t, "Company", data.Company)
	line(&t, "Subject", data.Subject)
	line(&t, "Service", data.ServiceType)
	line(&t, "Device", data.DeviceType)
	line(&t, "IP address", data.IPAddress)
	t.WriteString("\n" + data.Message + "\n")
	textBody = t.String()

	var buf bytes.Buffer
	leadHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return subject, textBody, htmlBody
}

// TicketEmailData contains the data for an office notification about a new
// remote support ticket.
type TicketEmailData struct {
	CompanyName  string
	TicketNumber string
	Name         string
	Email        string
	Phone        string
	Company      string
	Issue        string
	LookupURL    string
}

// TicketNotificationEmail generates both plain text and HTML versions of a
// new ticket notification.
func TicketNotificationEmail(data TicketEmailData) (subject, textBody, htmlBody string) {
	subject = "Support ticket " + data.TicketNumber + " opened by " + data.Name

	var t strings.Builder
	t.WriteString("Ticket " + data.TicketNumber + " was opened on " + data.CompanyName + ".\n\n")
	line(&t, "Name", data.Name)
	line(&t, "Email", data.Email)
	line(&t, "Phone", data.Phone)
	line(&t, "Company", data.Company)
	t.WriteString("\n" + data.Issue + "\n")
	if data.LookupURL != "" {
		t.WriteString("\nStatus page: " + data.LookupURL + "\n")
	}
	textBody = t.String()

	var buf bytes.Buffer
	ticketHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return subject, textBody, htmlBody
}

func line(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label + ": " + value + "\n")
}

var leadHTMLTmpl = template.Must(template.New("lead").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New {{.FormLabel}} submission</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.CompanyName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">New {{.FormLabel}} submission</h2>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size: 14px; line-height: 1.6; color: #52525b;">
                <tr><td style="padding: 4px 0; width: 120px; color: #71717a;">Name</td><td>{{.Name}}</td></tr>
                <tr><td style="padding: 4px 0; color: #71717a;">Email</td><td><a href="mailto:{{.Email}}" style="color: #2563eb;">{{.Email}}</a></td></tr>
                {{if .Phone}}<tr><td style="padding: 4px 0; color: #71717a;">Phone</td><td>{{.Phone}}</td></tr>{{end}}
                {{if .Company}}<tr><td style="padding: 4px 0; color: #71717a;">Company</td><td>{{.Company}}</td></tr>{{end}}
                {{if .Subject}}<tr><td style="padding: 4px 0; color: #71717a;">Subject</td><td>{{.Subject}}</td></tr>{{end}}
                {{if .ServiceType}}<tr><td style="padding: 4px 0; color: #71717a;">Service</td><td>{{.ServiceType}}</td></tr>{{end}}
                {{if .DeviceType}}<tr><td style="padding: 4px 0; color: #71717a;">Device</td><td>{{.DeviceType}}</td></tr>{{end}}
              </table>
              <div style="margin: 24px 0 0 0; padding: 16px; background-color: #fafafa; border: 1px solid #e4e4e7; border-radius: 6px; font-size: 14px; line-height: 1.6; color: #27272a; white-space: pre-wrap;">{{.Message}}</div>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #a1a1aa; text-align: center;">
                Reply to this email to answer {{.Name}} directly.{{if .IPAddress}} Sent from {{.IPAddress}}.{{end}}
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var ticketHTMLTmpl = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Support ticket {{.TicketNumber}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.CompanyName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 8px 0; font-size: 20px; font-weight: 600; color: #18181b;">Ticket {{.TicketNumber}}</h2>
              <p style="margin: 0 0 16px 0; font-size: 14px; color: #71717a;">Opened by {{.Name}} &lt;{{.Email}}&gt;{{if .Company}} at {{.Company}}{{end}}{{if .Phone}}, {{.Phone}}{{end}}</p>
              <div style="padding: 16px; background-color: #fafafa; border: 1px solid #e4e4e7; border-radius: 6px; font-size: 14px; line-height: 1.6; color: #27272a; white-space: pre-wrap;">{{.Issue}}</div>
              {{if .LookupURL}}
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 24px 0 0 0;">
                    <a href="{{.LookupURL}}" style="display: inline-block; padding: 14px 32px; background-color: #2563eb; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">View Ticket</a>
                  </td>
                </tr>
              </table>
              {{end}}
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

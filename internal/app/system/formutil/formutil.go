// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form is re-rendered with:
// - The visitor's previously entered values (echoed back)
// - An error message explaining what went wrong
//
// Successful submissions do not use this package; they flash the outcome and
// redirect (303) back to the form.
//
// Example usage:
//
//	type contactData struct {
//		formutil.Base
//		Name  string
//		Email string
//	}
//
//	data := contactData{
//		Base:  formutil.NewBase(r, "Contact Us | Right On Repair"),
//		Name:  name,
//		Email: email,
//	}
//	data.SetErrors(errs)
//	templates.Render(w, r, "contact/form", data)
package formutil

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
// It embeds viewdata.BaseVM for site context, and adds Error for form validation.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title string) Base {
	return Base{
		BaseVM: viewdata.New(r, title),
	}
}

// SetError sets the error message on a Base struct.
// The message is escaped; use it for plain text.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetErrors renders several messages as a line-broken list.
func (b *Base) SetErrors(msgs []string) {
	escaped := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m = strings.TrimSpace(m); m != "" {
			escaped = append(escaped, template.HTMLEscapeString(m))
		}
	}
	b.Error = template.HTML(strings.Join(escaped, "<br>"))
}

// HasError reports whether an error message is set.
func (b Base) HasError() bool {
	return b.Error != ""
}

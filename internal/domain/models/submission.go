// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactSubmission is a lead captured from one of the public forms.
type ContactSubmission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormType    string             `bson:"form_type" json:"form_type"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Subject     string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message     string             `bson:"message" json:"message"`
	ServiceType string             `bson:"service_type,omitempty" json:"service_type,omitempty"`
	DeviceType  string             `bson:"device_type,omitempty" json:"device_type,omitempty"`
	IPAddress   string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent   string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Form types
const (
	FormTypeContact       = "contact"
	FormTypeBusinessQuote = "business_quote"
	FormTypePersonalQuote = "personal_quote"
)

// AllFormTypes returns all valid form types.
func AllFormTypes() []string {
	return []string{
		FormTypeContact,
		FormTypeBusinessQuote,
		FormTypePersonalQuote,
	}
}

// internal/domain/models/support.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupportClient is the contact behind one or more support tickets.
// Email is stored lowercase and is unique.
type SupportClient struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Company      string             `bson:"company,omitempty" json:"company,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash" json:"-"` // random until a portal account is claimed
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// SupportTicket is a remote support request.
type SupportTicket struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketNumber string             `bson:"ticket_number" json:"ticket_number"` // RT-XXXXXXXX
	ClientID     primitive.ObjectID `bson:"client_id" json:"client_id"`
	Subject      string             `bson:"subject" json:"subject"`
	Description  string             `bson:"description" json:"description"`
	Status       string             `bson:"status" json:"status"`
	Priority     string             `bson:"priority" json:"priority"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// SupportTicketEvent is one entry in a ticket's history.
type SupportTicketEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID  primitive.ObjectID `bson:"ticket_id" json:"ticket_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// TicketPrefix starts every ticket number.
const TicketPrefix = "RT-"

// Ticket statuses
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket priorities
const (
	TicketPriorityLow    = "low"
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
)

// Ticket event types
const (
	TicketEventOpened = "opened"
	TicketEventNote   = "note"
	TicketEventStatus = "status"
)

// AllTicketStatuses returns all valid ticket statuses.
func AllTicketStatuses() []string {
	return []string{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed,
	}
}

// TicketStatusLabel returns a human label for a status.
func TicketStatusLabel(status string) string {
	switch status {
	case TicketStatusOpen:
		return "Open"
	case TicketStatusInProgress:
		return "In Progress"
	case TicketStatusResolved:
		return "Resolved"
	case TicketStatusClosed:
		return "Closed"
	default:
		return status
	}
}

// internal/app/store/tickets/ticketstore.go
package ticketstore

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/txn"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to support_clients, support_tickets and
// support_ticket_events.
type Store struct {
	db      *mongo.Database
	clients *mongo.Collection
	tickets *mongo.Collection
	events  *mongo.Collection
}

// New creates a new ticket store.
func New(db *mongo.Database) *Store {
	return &Store{
		db:      db,
		clients: db.Collection("support_clients"),
		tickets: db.Collection("support_tickets"),
		events:  db.Collection("support_ticket_events"),
	}
}

// FindOrCreateClient returns the client with c.Email, inserting c when none
// exists. Existing clients are returned unchanged. created reports whether
// c was inserted. The caller normalizes the email.
func (s *Store) FindOrCreateClient(ctx context.Context, c models.SupportClient) (client models.SupportClient, created bool, err error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	update := bson.M{"$setOnInsert": bson.M{
		"_id":           c.ID,
		"name":          c.Name,
		"company":       c.Company,
		"phone":         c.Phone,
		"password_hash": c.PasswordHash,
		"created_at":    c.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err = s.clients.FindOneAndUpdate(ctx, bson.M{"email": c.Email}, update, opts).Decode(&client)
	if err != nil {
		return models.SupportClient{}, false, err
	}
	return client, client.ID == c.ID, nil
}

// GetClient returns the client with id, or mongo.ErrNoDocuments.
func (s *Store) GetClient(ctx context.Context, id primitive.ObjectID) (models.SupportClient, error) {
	var c models.SupportClient
	if err := s.clients.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.SupportClient{}, err
	}
	return c, nil
}

// CreateTicket inserts t. A ticket number collision surfaces as a
// duplicate key error (see mongo.IsDuplicateKeyError).
func (s *Store) CreateTicket(ctx context.Context, t models.SupportTicket) (models.SupportTicket, error) {
	now := time.Now().UTC()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Status == "" {
		t.Status = models.TicketStatusOpen
	}
	if t.Priority == "" {
		t.Priority = models.TicketPriorityNormal
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.tickets.InsertOne(ctx, t); err != nil {
		return models.SupportTicket{}, err
	}
	return t, nil
}

// OpenTicket inserts t together with its "opened" history entry carrying
// note. Both writes share a transaction where the deployment supports one.
func (s *Store) OpenTicket(ctx context.Context, t models.SupportTicket, note string) (models.SupportTicket, error) {
	var opened models.SupportTicket
	err := txn.Run(ctx, s.db, nil, func(ctx context.Context) error {
		created, err := s.CreateTicket(ctx, t)
		if err != nil {
			return err
		}
		if _, err := s.AddEvent(ctx, models.SupportTicketEvent{
			TicketID:  created.ID,
			EventType: models.TicketEventOpened,
			Message:   note,
		}); err != nil {
			return err
		}
		opened = created
		return nil
	})
	if err != nil {
		return models.SupportTicket{}, err
	}
	return opened, nil
}

// GetByNumber returns the ticket with number, or mongo.ErrNoDocuments.
func (s *Store) GetByNumber(ctx context.Context, number string) (models.SupportTicket, error) {
	var t models.SupportTicket
	if err := s.tickets.FindOne(ctx, bson.M{"ticket_number": number}).Decode(&t); err != nil {
		return models.SupportTicket{}, err
	}
	return t, nil
}

// AddEvent appends an entry to a ticket's history.
func (s *Store) AddEvent(ctx context.Context, e models.SupportTicketEvent) (models.SupportTicketEvent, error) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := s.events.InsertOne(ctx, e); err != nil {
		return models.SupportTicketEvent{}, err
	}
	return e, nil
}

// Events returns a ticket's history, newest first.
func (s *Store) Events(ctx context.Context, ticketID primitive.ObjectID) ([]models.SupportTicketEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.events.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SupportTicketEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

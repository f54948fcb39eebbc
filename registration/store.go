package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatherly/db"
	"gatherly/events"
	"gatherly/models"
	"gatherly/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAlreadyRegistered = errors.New("You are already registered for this event")
	ErrEventFull         = errors.New("Event is full")
	ErrClosed            = errors.New("Registration for this event is closed")
)

// Store is the Mongo-backed implementation of the flow collaborators that
// live in this service (Checker and Registrar; the payment pair lives in the
// pay package).
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) IsRegistered(ctx context.Context, participantID, eventID string) (bool, error) {
	count, err := db.RegistrationsCollection.CountDocuments(ctx, bson.M{
		"participantid": participantID,
		"eventid":       eventID,
		"status":        models.RegistrationConfirmed,
	})
	if err != nil {
		return false, fmt.Errorf("registration lookup: %w", err)
	}
	return count > 0, nil
}

// Register is the free path: one eligibility re-check against stored state,
// then an atomic seat claim and the registration insert.
func (s *Store) Register(ctx context.Context, participantID, eventID string) error {
	_, err := s.Complete(ctx, participantID, eventID)
	return err
}

// Complete claims a seat and writes the confirmed registration. Both the
// free path and payment verification end here. The seat claim is a
// conditional update so the capacity invariant holds under concurrent
// registrations.
func (s *Store) Complete(ctx context.Context, participantID, eventID string) (*models.Registration, error) {
	registered, err := s.IsRegistered(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("Event not found")
		}
		return nil, fmt.Errorf("event lookup: %w", err)
	}
	if !events.IsRegistrationOpen(event, time.Now()) {
		return nil, ErrClosed
	}

	// Claim a seat; the filter guards against oversell.
	filter := bson.M{"eventid": eventID}
	if event.MaxParticipants > 0 {
		filter["current_participants"] = bson.M{"$lt": event.MaxParticipants}
	}
	res, err := db.EventsCollection.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"current_participants": 1},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("seat claim: %w", err)
	}
	if res.ModifiedCount == 0 {
		return nil, ErrEventFull
	}

	reg := models.Registration{
		RegistrationID: utils.GetUUID(),
		EventID:        eventID,
		ParticipantID:  participantID,
		Status:         models.RegistrationConfirmed,
		UniqueCode:     utils.GenerateRandomString(14),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if _, err := db.RegistrationsCollection.InsertOne(ctx, reg); err != nil {
		// Give the seat back; the registration did not happen.
		_, _ = db.EventsCollection.UpdateOne(ctx, bson.M{"eventid": eventID},
			bson.M{"$inc": bson.M{"current_participants": -1}})
		return nil, fmt.Errorf("store registration: %w", err)
	}
	return &reg, nil
}

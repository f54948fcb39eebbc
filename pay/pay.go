// Package pay implements the paid registration path: order creation with a
// server-side duplicate check, and gateway verification that finalizes the
// registration. A per-user Redis lock serializes order creation and an
// idempotency key makes client retries safe.
package pay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatherly/db"
	"gatherly/globals"
	"gatherly/models"
	"gatherly/rdx"
	"gatherly/registration"
	"gatherly/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// lockTTL defines the duration to hold the Redis lock per user
const lockTTL = 5 * time.Second

var (
	ErrLocked       = errors.New("another payment is in progress, please retry")
	ErrOrderUnknown = errors.New("payment order not found")
)

// Service creates and finalizes payment orders. It satisfies the flow
// machine's OrderCreator and PaymentVerifier.
type Service struct {
	verifier SignatureVerifier
	store    *registration.Store
	keyID    string
	currency string
}

func NewService(verifier SignatureVerifier) *Service {
	return &Service{
		verifier: verifier,
		store:    registration.NewStore(),
		keyID:    globals.Getenv("PAYMENT_KEY_ID", "rzp_test_key"),
		currency: globals.Getenv("PAYMENT_CURRENCY", "INR"),
	}
}

// CreateOrder starts a paid registration. The duplicate check runs here as
// well as at finalization, so a participant who is already registered gets a
// conflict before any payment widget opens.
func (s *Service) CreateOrder(ctx context.Context, participantID, eventID string, amount float64) (*models.PaymentOrder, error) {
	registered, err := s.store.IsRegistered(ctx, participantID, eventID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, registration.ErrAlreadyRegistered
	}

	acquired, err := rdx.RdxSetNX("pay_lock:"+participantID, "1", lockTTL)
	if err != nil || !acquired {
		return nil, ErrLocked
	}
	defer func() { _ = rdx.RdxDel("pay_lock:" + participantID) }()

	order := models.PaymentOrder{
		OrderID:       utils.GetUUID(),
		EventID:       eventID,
		ParticipantID: participantID,
		Amount:        amount,
		Currency:      s.currency,
		Status:        models.OrderCreated,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	return &order, nil
}

// VerifyAndRegister checks the gateway signature for the order, then claims
// the seat and writes the confirmed registration.
func (s *Service) VerifyAndRegister(ctx context.Context, orderID, paymentID, signature string) error {
	var order models.PaymentOrder
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOrderUnknown
		}
		return fmt.Errorf("order lookup: %w", err)
	}
	if order.Status == models.OrderPaid {
		// Verification already succeeded once; nothing left to do.
		return nil
	}

	if err := s.verifier.Verify(orderID, paymentID, signature); err != nil {
		s.markOrder(ctx, orderID, models.OrderFailed)
		return err
	}

	if _, err := s.store.Complete(ctx, order.ParticipantID, order.EventID); err != nil {
		s.markOrder(ctx, orderID, models.OrderFailed)
		return err
	}

	s.markOrder(ctx, orderID, models.OrderPaid)
	return nil
}

func (s *Service) markOrder(ctx context.Context, orderID, status string) {
	_, _ = db.OrdersCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
}

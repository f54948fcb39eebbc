package models

import "time"

// Payment order statuses
const (
	OrderCreated   = "created"
	OrderPaid      = "paid"
	OrderFailed    = "failed"
)

// PaymentOrder is created when a participant starts a paid registration and
// finalized by the verify-and-register call.
type PaymentOrder struct {
	OrderID        string    `json:"id" bson:"orderid"`
	EventID        string    `json:"eventid" bson:"eventid"`
	ParticipantID  string    `json:"participantid" bson:"participantid"`
	Amount         float64   `json:"amount" bson:"amount"`
	Currency       string    `json:"currency" bson:"currency"`
	Status         string    `json:"status" bson:"status"`
	IdempotencyKey string    `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

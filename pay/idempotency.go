package pay

import (
	"context"
	"time"

	"gatherly/db"
	"gatherly/models"
	"gatherly/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

// Idempotency keys map to order ids in Redis, with the order document as the
// durable fallback when the key has expired.
const idempotencyTTL = 24 * time.Hour

func (s *Service) lookupIdempotent(ctx context.Context, key string) (*models.PaymentOrder, bool) {
	orderID, err := rdx.RdxGet("pay_idem:" + key)
	if err != nil || orderID == "" {
		var order models.PaymentOrder
		if err := db.OrdersCollection.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&order); err != nil {
			return nil, false
		}
		return &order, true
	}

	var order models.PaymentOrder
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		return nil, false
	}
	return &order, true
}

func (s *Service) rememberIdempotent(ctx context.Context, key, orderID string) {
	_ = rdx.RdxSet("pay_idem:"+key, orderID, idempotencyTTL)
	_, _ = db.OrdersCollection.UpdateOne(ctx, bson.M{"orderid": orderID}, bson.M{
		"$set": bson.M{"idempotency_key": key},
	})
}

package pay

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gatherly/analytics"
	"gatherly/db"
	"gatherly/models"
	"gatherly/registration"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateOrderHandler starts a paid registration and hands the order to the
// client's payment widget. Duplicate registrations answer 409 here so the
// widget never opens for them.
func (s *Service) CreateOrderHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	participantID := utils.GetUserIDFromRequest(r)

	var body struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.EventID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "eventId is required")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": body.EventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.RegistrationFees <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "This event is free; register directly")
		return
	}

	// Idempotent retries get the original order back.
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		if order, ok := s.lookupIdempotent(r.Context(), key); ok {
			respondOrder(w, order, s.keyID)
			return
		}
	}

	order, err := s.CreateOrder(r.Context(), participantID, body.EventID, event.RegistrationFees)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrAlreadyRegistered):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrLocked):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			log.Println("CreateOrder error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create payment order")
		}
		return
	}

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		s.rememberIdempotent(r.Context(), key, order.OrderID)
	}

	respondOrder(w, order, s.keyID)
}

func respondOrder(w http.ResponseWriter, order *models.PaymentOrder, keyID string) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":       order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key":      keyID,
	})
}

// VerifyAndRegisterHandler is called after the widget's success callback.
// A bad signature or a lost seat is a failure the user sees verbatim; no
// retry happens server-side.
func (s *Service) VerifyAndRegisterHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	participantID := utils.GetUserIDFromRequest(r)

	var body struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId, paymentId and signature are required")
		return
	}

	var order models.PaymentOrder
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": body.OrderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, ErrOrderUnknown.Error())
		return
	}
	if order.ParticipantID != participantID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := s.VerifyAndRegister(r.Context(), body.OrderID, body.PaymentID, body.Signature); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, registration.ErrAlreadyRegistered) {
			status = http.StatusConflict
		}
		utils.RespondWithJSON(w, status, utils.M{"status": "failed", "message": err.Error()})
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": order.EventID}).Decode(&event); err == nil {
		analytics.Live.Publish(event.Organizer.OrgID, analytics.LiveUpdate{
			EventID:             event.EventID,
			CurrentParticipants: event.CurrentParticipants,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Payment verified and registration confirmed",
	})
}

package registration

import (
	"log"
	"net/http"
	"strings"
	"time"

	"gatherly/analytics"
	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var store = NewStore()

// IsRegisteredHandler answers the per participant/event lookup the
// registration page issues before rendering its call-to-action.
func IsRegisteredHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID := ps.ByName("id")
	if participantID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	registered, err := store.IsRegistered(r.Context(), participantID, ps.ByName("eventid"))
	if err != nil {
		log.Println("IsRegistered error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check registration")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"isRegistered": registered})
}

// RegisterHandler is the direct (free) registration endpoint, driven through
// the flow machine: session gate, already-registered check, eligibility,
// then the submit. Paid events must go through the payment order flow
// instead. The error body text is the user-facing message, surfaced verbatim
// by clients.
func RegisterHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	participantID := ps.ByName("id")
	eventID := ps.ByName("eventid")
	if participantID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.RegistrationFees > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "This event requires payment; create a payment order instead")
		return
	}

	session := &models.Session{
		UserID: participantID,
		Role:   utils.GetRoleFromRequest(r),
	}
	flow := NewFlow(store, store, nil, nil)
	flow.Begin(session)
	flow.Check(r.Context(), session, event, time.Now())
	flow.Submit(r.Context(), session, event)

	switch flow.State() {
	case StateNotLoggedIn:
		utils.RespondWithError(w, http.StatusUnauthorized, "Login required")
	case StateWrongRole:
		utils.RespondWithError(w, http.StatusForbidden, "Only participants can register for events")
	case StateAlreadyRegistered:
		utils.RespondWithError(w, http.StatusConflict, ErrAlreadyRegistered.Error())
	case StateClosed:
		utils.RespondWithError(w, http.StatusBadRequest, ErrClosed.Error())
	case StateFailed:
		utils.RespondWithError(w, failureStatus(flow), flow.Message())
	case StateSuccess:
		var reg models.Registration
		err := db.RegistrationsCollection.FindOne(r.Context(), bson.M{
			"participantid": participantID,
			"eventid":       eventID,
		}).Decode(&reg)
		if err != nil {
			log.Println("RegisterHandler readback error:", err)
		}

		analytics.Live.Publish(event.Organizer.OrgID, analytics.LiveUpdate{
			EventID:             event.EventID,
			CurrentParticipants: event.CurrentParticipants + 1,
		})
		utils.RespondWithJSON(w, http.StatusCreated, reg)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
	}
}

func failureStatus(flow *Flow) int {
	msg := flow.Message()
	switch {
	case flow.IsDuplicate():
		return http.StatusConflict
	case strings.Contains(msg, ErrEventFull.Error()), strings.Contains(msg, ErrClosed.Error()):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

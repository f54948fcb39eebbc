package events

import (
	"context"
	"log"
	"net/http"
	"time"

	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// EditEvent updates mutable event fields. Only the owning organization may
// edit; participant counts are never writable through this path.
func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	orgID := utils.GetUserIDFromRequest(r)

	existing, ok := requireOwnedEvent(w, r.Context(), eventID, orgID)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}
	eventJSON := r.FormValue("event")
	if eventJSON == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing event data")
		return
	}

	incoming, err := NormalizeEvent([]byte(eventJSON))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event data")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if incoming.Title != "" {
		update["title"] = incoming.Title
	}
	if incoming.Description != "" {
		update["description"] = incoming.Description
	}
	if incoming.Type != "" {
		update["type"] = incoming.Type
	}
	if incoming.Location != "" {
		update["location"] = incoming.Location
	}
	if !incoming.EventDate.IsZero() {
		update["event_date"] = incoming.EventDate
	}
	if !incoming.RegistrationDeadline.IsZero() {
		update["registration_deadline"] = incoming.RegistrationDeadline
	}
	if incoming.MaxParticipants > 0 {
		update["max_participants"] = incoming.MaxParticipants
	}
	if len(incoming.Tags) > 0 {
		update["tags"] = incoming.Tags
	}
	if incoming.ImageURL != "" {
		update["image_url"] = incoming.ImageURL
	}

	_, err = db.EventsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": existing.EventID},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Println("EditEvent update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	var updated models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": existing.EventID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load updated event")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteEvent removes an event and its dependent records.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	orgID := utils.GetUserIDFromRequest(r)

	if _, ok := requireOwnedEvent(w, r.Context(), eventID, orgID); !ok {
		return
	}

	if _, err := db.EventsCollection.DeleteOne(r.Context(), bson.M{"eventid": eventID}); err != nil {
		log.Println("DeleteEvent error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if err := deleteRelatedData(r.Context(), eventID); err != nil {
		log.Println("DeleteEvent cleanup:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Event deleted"})
}

func requireOwnedEvent(w http.ResponseWriter, ctx context.Context, eventID, orgID string) (models.Event, bool) {
	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return models.Event{}, false
	}
	if event.Organizer.OrgID != orgID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not own this event")
		return models.Event{}, false
	}
	return event, true
}

// deleteRelatedData drops registrations, orders and attendance rows of a
// deleted event.
func deleteRelatedData(ctx context.Context, eventID string) error {
	if _, err := db.RegistrationsCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return err
	}
	if _, err := db.OrdersCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return err
	}
	if _, err := db.AttendanceCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return err
	}
	return nil
}

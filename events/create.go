package events

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gatherly/db"
	"gatherly/filemgr"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateEvent stores a new event for the logged-in organization. The request
// is multipart: an "event" field holding the JSON payload plus an optional
// banner image. The payload goes through the normalizer so the handler never
// touches raw field variants.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orgID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	eventJSON := r.FormValue("event")
	if eventJSON == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing event data")
		return
	}

	event, err := NormalizeEvent([]byte(eventJSON))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid event data")
		return
	}
	if err := validateEvent(event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	event.EventID = utils.GetUUID()
	event.CurrentParticipants = 0
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	event.Organizer.OrgID = orgID
	if name := lookupOrgName(r.Context(), orgID); name != "" {
		event.Organizer.Name = name
	}

	if banner, err := filemgr.SaveFormFile(r.MultipartForm, "banner", filemgr.EntityEvent, event.EventID); err == nil && banner != "" {
		event.ImageURL = banner
	}

	if _, err := db.EventsCollection.InsertOne(r.Context(), event); err != nil {
		log.Println("CreateEvent insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

func validateEvent(e models.Event) error {
	if e.Title == "" || e.Location == "" {
		return fmt.Errorf("title and location are required")
	}
	if e.EventDate.IsZero() {
		return fmt.Errorf("a valid event date is required")
	}
	if !e.RegistrationDeadline.IsZero() && e.RegistrationDeadline.After(e.EventDate) {
		return fmt.Errorf("registration deadline must not be after the event date")
	}
	if e.RegistrationFees < 0 {
		return fmt.Errorf("registration fees must not be negative")
	}
	return nil
}

func lookupOrgName(ctx context.Context, orgID string) string {
	var org models.User
	if err := db.UsersCollection.FindOne(ctx, bson.M{"userid": orgID}).Decode(&org); err != nil {
		return ""
	}
	if org.Name != "" {
		return org.Name
	}
	return org.Username
}

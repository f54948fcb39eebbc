package tickets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gatherly/analytics"
	"gatherly/db"
	"gatherly/models"
	"gatherly/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// QRHandler serves the registration pass as a QR PNG.
func QRHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reg, _, ok := lookupPass(w, r, ps)
	if !ok {
		return
	}

	png, err := qrcode.Encode(PassPayload(reg.EventID, reg.UniqueCode), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// PDFHandler serves a printable pass: event details plus the same QR code.
func PDFHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reg, event, ok := lookupPass(w, r, ps)
	if !ok {
		return
	}

	png, err := qrcode.Encode(PassPayload(reg.EventID, reg.UniqueCode), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Event Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Event: %s", event.Title))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", event.EventDate.Format("Mon, 02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Location: %s", event.Location))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Code: %s", reg.UniqueCode))
	pdf.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("pass-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("pass-qr", 15, 90, 60, 60, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Println("PDFHandler output error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render pass")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass.pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// CheckinHandler marks a scanned pass as attended and writes the attendance
// record the monthly analytics aggregate over. Only the owning organization
// may check participants in.
func CheckinHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	orgID := utils.GetUserIDFromRequest(r)

	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "QR payload is required")
		return
	}

	payloadEventID, uniqueCode, err := VerifyPassPayload(body.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payloadEventID != eventID {
		utils.RespondWithError(w, http.StatusBadRequest, "Pass belongs to a different event")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if event.Organizer.OrgID != orgID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not own this event")
		return
	}

	var reg models.Registration
	err = db.RegistrationsCollection.FindOne(r.Context(), bson.M{
		"eventid":     eventID,
		"unique_code": uniqueCode,
	}).Decode(&reg)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Registration not found")
		return
	}
	if reg.Attended {
		utils.RespondWithError(w, http.StatusConflict, "Pass already scanned")
		return
	}

	_, err = db.RegistrationsCollection.UpdateOne(r.Context(),
		bson.M{"registrationid": reg.RegistrationID},
		bson.M{"$set": bson.M{"attended": true, "updated_at": time.Now()}})
	if err != nil {
		log.Println("CheckinHandler update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record check-in")
		return
	}

	record := models.AttendanceRecord{
		EventID:       eventID,
		OrgID:         orgID,
		ParticipantID: reg.ParticipantID,
		Month:         event.EventDate.Format("2006-01"),
		Present:       true,
		RecordedAt:    time.Now(),
	}
	if _, err := db.AttendanceCollection.InsertOne(r.Context(), record); err != nil {
		log.Println("CheckinHandler attendance insert:", err)
	}

	analytics.Live.Publish(orgID, analytics.LiveUpdate{
		EventID:             eventID,
		CurrentParticipants: event.CurrentParticipants,
		CheckedIn:           true,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":            true,
		"participantid": reg.ParticipantID,
		"message":       "Check-in recorded",
	})
}

func lookupPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (models.Registration, models.Event, bool) {
	participantID := ps.ByName("id")
	eventID := ps.ByName("eventid")
	if participantID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return models.Registration{}, models.Event{}, false
	}

	var reg models.Registration
	err := db.RegistrationsCollection.FindOne(r.Context(), bson.M{
		"participantid": participantID,
		"eventid":       eventID,
		"status":        models.RegistrationConfirmed,
	}).Decode(&reg)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No confirmed registration for this event")
		return models.Registration{}, models.Event{}, false
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return models.Registration{}, models.Event{}, false
	}
	return reg, event, true
}

package models

import (
	"strings"
	"time"
)

// OrganizerSummary is the read-only slice of an organization embedded in events.
type OrganizerSummary struct {
	OrgID  string `json:"id" bson:"orgid"`
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// Event is the canonical event shape. Every handler and every view works
// with this struct; raw backend field variants never leave the normalizer.
type Event struct {
	EventID              string           `json:"id" bson:"eventid"`
	Title                string           `json:"title" bson:"title"`
	Description          string           `json:"description" bson:"description"`
	Type                 string           `json:"type" bson:"type"`
	EventDate            time.Time        `json:"eventDate" bson:"event_date"`
	RegistrationDeadline time.Time        `json:"lastRegisterDate,omitempty" bson:"registration_deadline,omitempty"`
	Location             string           `json:"location" bson:"location"`
	MaxParticipants      int              `json:"maxParticipants,omitempty" bson:"max_participants,omitempty"`
	CurrentParticipants  int              `json:"currentParticipants" bson:"current_participants"`
	RegistrationFees     float64          `json:"registrationFees" bson:"registration_fees"`
	Tags                 []string         `json:"tags" bson:"tags"`
	ImageURL             string           `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Organizer            OrganizerSummary `json:"organizer" bson:"organizer"`
	CreatedAt            time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" bson:"updated_at"`
}

// City returns the first comma-delimited segment of the location, trimmed.
// Aggregations treat this token as the event's city.
func (e Event) City() string {
	city, _, _ := strings.Cut(e.Location, ",")
	return strings.TrimSpace(city)
}

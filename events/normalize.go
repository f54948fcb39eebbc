package events

import (
	"encoding/json"
	"fmt"
	"time"

	"gatherly/models"
)

// RawEvent mirrors the loose shapes events arrive in. Older payloads use
// `date` and `image`; newer ones `eventDate` and `imageUrl`; the deadline
// has shipped under three different names, including the misspelled
// `lastRegistertDate` that is part of the wire contract. Numeric fields may
// be numbers or numeric strings.
type RawEvent struct {
	ID                   json.RawMessage   `json:"id"`
	EventID              json.RawMessage   `json:"eventid"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Type                 string            `json:"type"`
	Category             string            `json:"category"`
	Date                 models.FlexTime   `json:"date"`
	EventDate            models.FlexTime   `json:"eventDate"`
	LastRegisterDate     models.FlexTime   `json:"lastRegisterDate"`
	LastRegistertDate    models.FlexTime   `json:"lastRegistertDate"`
	RegistrationDeadline models.FlexTime   `json:"registrationDeadline"`
	Location             string            `json:"location"`
	MaxParticipants      models.FlexInt    `json:"maxParticipants"`
	CurrentParticipants  models.FlexInt    `json:"currentParticipants"`
	RegistrationFees     models.FlexFloat  `json:"registrationFees"`
	Tags                 []string          `json:"tags"`
	Image                string            `json:"image"`
	ImageURL             string            `json:"imageUrl"`
	Organizer            rawOrganizer      `json:"organizer"`
}

type rawOrganizer struct {
	ID     json.RawMessage `json:"id"`
	Name   string          `json:"name"`
	Avatar string          `json:"avatar"`
}

// Normalize maps a raw payload onto the canonical Event. It never fails on
// odd field shapes; unparseable dates come out as zero times, which the
// eligibility evaluator treats as closed.
func (raw RawEvent) Normalize() models.Event {
	e := models.Event{
		EventID:             rawID(raw.ID, raw.EventID),
		Title:               raw.Title,
		Description:         raw.Description,
		Type:                raw.Type,
		Location:            raw.Location,
		MaxParticipants:     raw.MaxParticipants.Int(),
		CurrentParticipants: raw.CurrentParticipants.Int(),
		RegistrationFees:    raw.RegistrationFees.Float(),
		Tags:                raw.Tags,
		ImageURL:            raw.ImageURL,
	}
	if e.Type == "" {
		e.Type = raw.Category
	}
	if e.ImageURL == "" {
		e.ImageURL = raw.Image
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	e.EventDate = firstNonZero(raw.EventDate.Time(), raw.Date.Time())
	e.RegistrationDeadline = firstNonZero(
		raw.RegistrationDeadline.Time(),
		raw.LastRegisterDate.Time(),
		raw.LastRegistertDate.Time(),
	)

	e.Organizer = models.OrganizerSummary{
		OrgID:  rawID(raw.Organizer.ID),
		Name:   raw.Organizer.Name,
		Avatar: raw.Organizer.Avatar,
	}
	return e
}

// NormalizeEvent decodes one raw JSON event into the canonical shape.
func NormalizeEvent(data []byte) (models.Event, error) {
	var raw RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return raw.Normalize(), nil
}

// NormalizeEvents decodes a raw JSON array of events.
func NormalizeEvents(data []byte) ([]models.Event, error) {
	var raws []RawEvent
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	out := make([]models.Event, 0, len(raws))
	for _, raw := range raws {
		out = append(out, raw.Normalize())
	}
	return out, nil
}

// rawID renders the first non-empty candidate as a plain string, accepting
// both JSON strings and numbers.
func rawID(candidates ...json.RawMessage) string {
	for _, c := range candidates {
		if len(c) == 0 || string(c) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(c, &s); err == nil {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(c, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

func firstNonZero(times ...time.Time) time.Time {
	for _, t := range times {
		if !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

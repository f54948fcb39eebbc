package events

import (
	"testing"
	"time"
)

func TestNormalizeAcceptsFieldVariants(t *testing.T) {
	old := []byte(`{
		"id": 42,
		"title": "Old Shape",
		"category": "meetup",
		"date": "2025-03-01T18:00:00Z",
		"image": "banner.jpg",
		"lastRegistertDate": "2025-02-20T00:00:00Z",
		"maxParticipants": "50",
		"currentParticipants": "12",
		"registrationFees": "250.5",
		"location": "Hyderabad, India"
	}`)

	event, err := NormalizeEvent(old)
	if err != nil {
		t.Fatalf("NormalizeEvent: %v", err)
	}

	if event.EventID != "42" {
		t.Errorf("EventID = %q, want \"42\" (numeric id coerced)", event.EventID)
	}
	if event.Type != "meetup" {
		t.Errorf("Type = %q, want category fallback", event.Type)
	}
	if event.ImageURL != "banner.jpg" {
		t.Errorf("ImageURL = %q, want image fallback", event.ImageURL)
	}
	if event.EventDate.IsZero() {
		t.Error("EventDate not taken from the date variant")
	}
	if want := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC); !event.RegistrationDeadline.Equal(want) {
		t.Errorf("RegistrationDeadline = %v, want %v (misspelled variant)", event.RegistrationDeadline, want)
	}
	if event.MaxParticipants != 50 || event.CurrentParticipants != 12 {
		t.Errorf("participant counts = %d/%d, want 12/50 from string coercion",
			event.CurrentParticipants, event.MaxParticipants)
	}
	if event.RegistrationFees != 250.5 {
		t.Errorf("RegistrationFees = %v, want 250.5", event.RegistrationFees)
	}
}

func TestNormalizePrefersNewFieldNames(t *testing.T) {
	data := []byte(`{
		"id": "abc",
		"eventDate": "2025-03-01T18:00:00Z",
		"date": "2020-01-01T00:00:00Z",
		"imageUrl": "new.jpg",
		"image": "old.jpg",
		"registrationDeadline": "2025-02-01T00:00:00Z",
		"lastRegisterDate": "2020-01-01T00:00:00Z"
	}`)

	event, err := NormalizeEvent(data)
	if err != nil {
		t.Fatalf("NormalizeEvent: %v", err)
	}
	if event.EventDate.Year() != 2025 {
		t.Errorf("eventDate variant should win over date, got %v", event.EventDate)
	}
	if event.ImageURL != "new.jpg" {
		t.Errorf("imageUrl variant should win over image, got %q", event.ImageURL)
	}
	if event.RegistrationDeadline.Year() != 2025 {
		t.Errorf("registrationDeadline should win over lastRegisterDate, got %v", event.RegistrationDeadline)
	}
}

func TestNormalizeUnparseableDateClosesRegistration(t *testing.T) {
	data := []byte(`{"id": "x", "title": "Bad Date", "eventDate": "not-a-date"}`)

	event, err := NormalizeEvent(data)
	if err != nil {
		t.Fatalf("NormalizeEvent must not fail on a bad date: %v", err)
	}
	if !event.EventDate.IsZero() {
		t.Fatalf("unparseable date should normalize to zero, got %v", event.EventDate)
	}
	if IsRegistrationOpen(event, time.Now()) {
		t.Fatal("event with unparseable date must be closed, not open or panicking")
	}
}

func TestNormalizeEventsArray(t *testing.T) {
	data := []byte(`[{"id":"1","title":"A"},{"id":"2","title":"B","tags":["go","web"]}]`)

	list, err := NormalizeEvents(data)
	if err != nil {
		t.Fatalf("NormalizeEvents: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d events, want 2", len(list))
	}
	if list[0].Tags == nil {
		t.Error("missing tags should normalize to an empty slice")
	}
	if len(list[1].Tags) != 2 {
		t.Errorf("tags = %v, want [go web]", list[1].Tags)
	}
}

func TestNormalizeOrganizer(t *testing.T) {
	data := []byte(`{"id":"1","organizer":{"id":7,"name":"Acme Events","avatar":"a.png"}}`)

	event, err := NormalizeEvent(data)
	if err != nil {
		t.Fatalf("NormalizeEvent: %v", err)
	}
	if event.Organizer.OrgID != "7" || event.Organizer.Name != "Acme Events" {
		t.Fatalf("organizer = %+v", event.Organizer)
	}
}

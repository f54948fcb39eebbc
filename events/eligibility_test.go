package events

import (
	"testing"
	"time"

	"gatherly/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestRegistrationClosedForPastEvent(t *testing.T) {
	event := models.Event{EventID: "e1", EventDate: mustTime(t, "2024-01-01T10:00:00Z")}
	now := mustTime(t, "2025-01-01T10:00:00Z")

	if IsRegistrationOpen(event, now) {
		t.Fatal("expected registration closed for an event in 2024 when now is 2025")
	}
}

func TestRegistrationOpenBeforeEventDate(t *testing.T) {
	event := models.Event{EventID: "e1", EventDate: mustTime(t, "2025-06-01T10:00:00Z")}
	now := mustTime(t, "2025-01-01T10:00:00Z")

	if !IsRegistrationOpen(event, now) {
		t.Fatal("expected registration open before the event date")
	}
}

func TestUncappedNoDeadlineOpenIffBeforeEventDate(t *testing.T) {
	event := models.Event{EventDate: mustTime(t, "2025-06-01T10:00:00Z")}

	if !IsRegistrationOpen(event, event.EventDate.Add(-time.Hour)) {
		t.Error("expected open an hour before the event")
	}
	if !IsRegistrationOpen(event, event.EventDate) {
		t.Error("expected open at exactly the event date")
	}
	if IsRegistrationOpen(event, event.EventDate.Add(time.Second)) {
		t.Error("expected closed after the event date")
	}
}

func TestRegistrationClosedAfterDeadline(t *testing.T) {
	event := models.Event{
		EventDate:            mustTime(t, "2025-06-01T10:00:00Z"),
		RegistrationDeadline: mustTime(t, "2025-05-01T00:00:00Z"),
	}

	if IsRegistrationOpen(event, mustTime(t, "2025-05-15T00:00:00Z")) {
		t.Fatal("expected closed once the deadline has passed")
	}
	if !IsRegistrationOpen(event, mustTime(t, "2025-04-15T00:00:00Z")) {
		t.Fatal("expected open before the deadline")
	}
}

func TestRegistrationClosedWhenFull(t *testing.T) {
	event := models.Event{
		EventDate:           mustTime(t, "2025-06-01T10:00:00Z"),
		MaxParticipants:     100,
		CurrentParticipants: 100,
	}

	if IsRegistrationOpen(event, mustTime(t, "2025-01-01T00:00:00Z")) {
		t.Fatal("expected closed when capacity is reached, regardless of dates")
	}

	event.CurrentParticipants = 99
	if !IsRegistrationOpen(event, mustTime(t, "2025-01-01T00:00:00Z")) {
		t.Fatal("expected open with one seat left")
	}
}

func TestMissingEventDateClosesRegistration(t *testing.T) {
	if IsRegistrationOpen(models.Event{}, time.Now()) {
		t.Fatal("expected closed for an event with no parseable date")
	}
}

func TestFillRate(t *testing.T) {
	event := models.Event{MaxParticipants: 3, CurrentParticipants: 1}
	if got := FillRate(event); got != 33 {
		t.Errorf("FillRate = %d, want 33", got)
	}
	event.CurrentParticipants = 2
	if got := FillRate(event); got != 67 {
		t.Errorf("FillRate = %d, want 67 (round half up)", got)
	}
	if got := FillRate(models.Event{CurrentParticipants: 50}); got != 0 {
		t.Errorf("FillRate for uncapped event = %d, want 0", got)
	}
}

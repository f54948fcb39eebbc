package events

import (
	"math"
	"time"

	"gatherly/models"
)

// IsRegistrationOpen reports whether the event accepts new registrations at
// the given instant. Checks run in order and the first failure closes
// registration:
//  1. the event has already happened,
//  2. the registration deadline has passed,
//  3. the event is at capacity.
//
// A missing or unparseable event date closes registration rather than
// erroring out.
func IsRegistrationOpen(e models.Event, now time.Time) bool {
	if e.EventDate.IsZero() || now.After(e.EventDate) {
		return false
	}
	if !e.RegistrationDeadline.IsZero() && now.After(e.RegistrationDeadline) {
		return false
	}
	if e.MaxParticipants > 0 && e.CurrentParticipants >= e.MaxParticipants {
		return false
	}
	return true
}

// FillRate is currentParticipants over capacity as a whole percentage,
// rounded half up. Uncapped events have no meaningful fill rate and report 0.
func FillRate(e models.Event) int {
	if e.MaxParticipants <= 0 {
		return 0
	}
	return int(math.Round(float64(e.CurrentParticipants) / float64(e.MaxParticipants) * 100))
}

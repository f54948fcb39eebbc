package models

import "time"

// Registration statuses
const RegistrationConfirmed = "confirmed"

type Registration struct {
	RegistrationID string    `json:"registrationid" bson:"registrationid"`
	EventID        string    `json:"eventid" bson:"eventid"`
	ParticipantID  string    `json:"participantid" bson:"participantid"`
	Status         string    `json:"status" bson:"status"`
	UniqueCode     string    `json:"unique_code" bson:"unique_code"`
	Attended       bool      `json:"attended" bson:"attended"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// AttendanceRecord is written at check-in time and feeds monthly analytics.
type AttendanceRecord struct {
	EventID       string    `json:"eventid" bson:"eventid"`
	OrgID         string    `json:"orgid" bson:"orgid"`
	ParticipantID string    `json:"participantid" bson:"participantid"`
	Month         string    `json:"month" bson:"month"`
	Present       bool      `json:"present" bson:"present"`
	RecordedAt    time.Time `json:"recorded_at" bson:"recorded_at"`
}

// MonthlyStat is one row of the monthly-participants analytics payload.
// Present/absent may arrive as numbers or numeric strings and are coerced.
type MonthlyStat struct {
	Month   string  `json:"month" bson:"month"`
	Present FlexInt `json:"present" bson:"present"`
	Absent  FlexInt `json:"absent" bson:"absent"`
}

package models

import "time"

// User is a stored account, either a participant or an organization.
type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Password     string    `json:"-" bson:"password"`
	Role         string    `json:"role" bson:"role"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	Avatar       string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// Session is the role-tagged identity held for a logged-in user.
type Session struct {
	UserID    string    `json:"userid"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// InterestSet is a participant's set of interest tags. Membership is unique;
// the stored list is the canonical order tags were first added in.
type InterestSet struct {
	ParticipantID string    `json:"participantid" bson:"participantid"`
	Tags          []string  `json:"tags" bson:"tags"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

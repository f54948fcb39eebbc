package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(Getenv("JWT_SECRET", "change_me_in_production"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

// User roles
const (
	RoleParticipant  = "PARTICIPANT"
	RoleOrganization = "ORGANIZATION"
)

var Ctx = context.Background()

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Role   string

	ExpiresAt time.Time
}

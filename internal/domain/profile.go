package domain

import "time"

type UserProfile struct {
	UserID      string    `json:"user_id"`
	DisplayName *string   `json:"display_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Identity is the caller as asserted by the external session provider.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

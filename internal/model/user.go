package model

import (
	"fmt"
	"time"
)

// User represents a wardrobe owner.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	// WashDurationDays is how long this user's washing cycle takes.
	// Items marked as washing become available again after this many days.
	WashDurationDays int       `json:"wash_duration_days"`
	CreatedAt        time.Time `json:"created_at"`
}

// DefaultWashDurationDays is used when a user has no configured duration.
const DefaultWashDurationDays = 1

// ValidatePassword checks password requirements.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

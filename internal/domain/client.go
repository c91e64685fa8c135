package domain

import (
	"strings"
	"time"
)

// Client represents a bank client who can own accounts.
type Client struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateName checks that a client display name is usable.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

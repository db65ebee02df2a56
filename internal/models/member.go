package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a canonical person identity. One member may hold
// identifiers in many sources; the name is the primary display key.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMember creates a new Member with a generated UUID
func NewMember(name string, email *string) *Member {
	return &Member{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
}

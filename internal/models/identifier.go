package models

import (
	"time"

	"github.com/google/uuid"
)

// Identifier binds one external identity to a member. The pair
// (source, source_user_id) is globally unique: an external identity
// belongs to exactly one member. Bindings are never updated in place;
// rebinding means delete and reinsert.
type Identifier struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	Source       string    `json:"source"`
	SourceUserID string    `json:"source_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewIdentifier creates a new Identifier with a generated UUID
func NewIdentifier(memberID, source, sourceUserID string) *Identifier {
	return &Identifier{
		ID:           uuid.New().String(),
		MemberID:     memberID,
		Source:       source,
		SourceUserID: sourceUserID,
	}
}

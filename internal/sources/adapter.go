package sources

import (
	"context"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
)

// Adapter is the contract every source connector satisfies to feed the
// sync engine. Implementations own authentication, pagination and any
// internal concurrency; the engine only sees the three outputs below.
type Adapter interface {
	// Name is the source key stored on identifiers and activities,
	// e.g. "github" or "slack".
	Name() string

	// MemberMapping returns source_user_id -> member display name.
	// Keys should be lower-cased to normalize case-insensitive
	// source IDs.
	MemberMapping(ctx context.Context) (map[string]string, error)

	// MemberDetails returns display name -> enrichment, including the
	// original-case source identifier.
	MemberDetails(ctx context.Context) (map[string]models.MemberDetail, error)

	// Activities returns raw events for the window, each carrying a
	// member_identifier that matches a mapping key case-insensitively.
	Activities(ctx context.Context, since, until time.Time) ([]models.RawActivity, error)
}

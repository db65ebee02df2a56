package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known activity types. The column is free-form; these are the
// conventions the aggregation engine and score weights understand.
const (
	ActivityTypeCommit      = "commit"
	ActivityTypePullRequest = "pull_request"
	ActivityTypeIssue       = "issue"
	ActivityTypeMessage     = "message"
	ActivityTypeReaction    = "reaction"
)

// Activity is one immutable event attributed to a member. ActivityID is
// a source-derived natural key ("github:commit:<sha>") used for
// deduplication; when nil the row is never deduplicated.
type Activity struct {
	ID           string                 `json:"id"`
	MemberID     string                 `json:"member_id"`
	Source       string                 `json:"source"`
	ActivityType string                 `json:"activity_type"`
	Timestamp    time.Time              `json:"timestamp"`
	Metadata     map[string]interface{} `json:"metadata"`
	ActivityID   *string                `json:"activity_id"`
	CreatedAt    time.Time              `json:"created_at"`
}

// NewActivity creates a new Activity with a generated UUID
func NewActivity(memberID, source, activityType string, timestamp time.Time, metadata map[string]interface{}, activityID *string) *Activity {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &Activity{
		ID:           uuid.New().String(),
		MemberID:     memberID,
		Source:       source,
		ActivityType: activityType,
		Timestamp:    timestamp,
		Metadata:     metadata,
		ActivityID:   activityID,
	}
}

// MetadataString returns a string metadata field, or "" when absent
// or not a string.
func (a *Activity) MetadataString(key string) string {
	if v, ok := a.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// MetadataInt returns an integer metadata field. JSON decoding stores
// numbers as float64, so both forms are accepted.
func (a *Activity) MetadataInt(key string) int {
	switch v := a.Metadata[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// MetadataStrings returns a string-list metadata field. JSON decoding
// stores arrays as []interface{}, so both forms are accepted.
func (a *Activity) MetadataStrings(key string) []string {
	switch v := a.Metadata[key].(type) {
	case []string:
		return v
	case []interface{}:
		var values []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return values
	}
	return nil
}

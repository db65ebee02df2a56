package models

import "time"

// RawActivity is one event as produced by a source adapter, before
// identity resolution. MemberIdentifier matches a key of the adapter's
// member mapping, case-insensitively.
type RawActivity struct {
	MemberIdentifier string                 `json:"member_identifier"`
	ActivityType     string                 `json:"activity_type"`
	Timestamp        time.Time              `json:"timestamp"`
	Metadata         map[string]interface{} `json:"metadata"`
	ActivityID       *string                `json:"activity_id"`
}

// MemberDetail carries the per-member enrichment a source adapter
// knows beyond the mapping: an optional email and the original-case
// source identifier (mapping keys are normalized to lower case).
type MemberDetail struct {
	Email    string `json:"email"`
	SourceID string `json:"source_id"`
}

// SyncStats summarizes one reconciliation pass. Partial failures are
// counted here, never raised; only systemic failures abort a sync.
type SyncStats struct {
	MembersRegistered int `json:"members_registered"`
	ActivitiesAdded   int `json:"activities_added"`
	Errors            int `json:"errors"`
}

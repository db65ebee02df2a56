package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ActivityFilter composes optional query constraints with AND semantics
type ActivityFilter struct {
	MemberID string
	Source   string
	Start    *time.Time
	End      *time.Time
	Limit    int
}

// Create inserts an activity. A duplicate activity_id is a silent
// no-op (reported as inserted=false), which makes re-ingestion of the
// same raw event safe. Rows without an activity_id always insert.
// Timestamps are stored in UTC: the driver persists time.Time as text
// with the zone offset, and the range filters compare that text, so
// mixed offsets would order incorrectly.
func (r *ActivityRepository) Create(activity *models.Activity) (bool, error) {
	metadata, err := json.Marshal(activity.Metadata)
	if err != nil {
		return false, err
	}

	query := `
		INSERT OR IGNORE INTO member_activities (
			id, member_id, source, activity_type, timestamp, metadata, activity_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		activity.ID, activity.MemberID, activity.Source, activity.ActivityType,
		activity.Timestamp.UTC(), string(metadata), activity.ActivityID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Query retrieves activities matching the filter, newest first
func (r *ActivityRepository) Query(filter ActivityFilter) ([]*models.Activity, error) {
	query := `
		SELECT id, member_id, source, activity_type, timestamp, metadata, activity_id, created_at
		FROM member_activities
		WHERE 1=1
	`
	var args []interface{}

	if filter.MemberID != "" {
		query += " AND member_id = ?"
		args = append(args, filter.MemberID)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Start != nil {
		query += " AND timestamp >= ?"
		args = append(args, filter.Start.UTC())
	}
	if filter.End != nil {
		query += " AND timestamp <= ?"
		args = append(args, filter.End.UTC())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// CountByMemberID returns the total number of activities for a member
func (r *ActivityRepository) CountByMemberID(memberID string) (int, error) {
	query := `SELECT COUNT(*) FROM member_activities WHERE member_id = ?`
	var count int
	err := r.db.QueryRow(query, memberID).Scan(&count)
	return count, err
}

func scanActivity(rows *sql.Rows) (*models.Activity, error) {
	activity := &models.Activity{}
	var metadata string

	err := rows.Scan(
		&activity.ID, &activity.MemberID, &activity.Source, &activity.ActivityType,
		&activity.Timestamp, &metadata, &activity.ActivityID, &activity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &activity.Metadata); err != nil {
		return nil, err
	}

	return activity, nil
}

package repositories

import (
	"database/sql"

	"github.com/mertkaya/teampulse/internal/models"
)

type IdentifierRepository struct {
	db *sql.DB
}

func NewIdentifierRepository(db *sql.DB) *IdentifierRepository {
	return &IdentifierRepository{db: db}
}

// Create inserts an identifier binding. The (source, source_user_id)
// pair is unique; a conflicting bind is ignored and reported as
// inserted=false so callers can flag it (first binding wins).
func (r *IdentifierRepository) Create(identifier *models.Identifier) (bool, error) {
	query := `
		INSERT OR IGNORE INTO member_identifiers (
			id, member_id, source, source_user_id
		) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		identifier.ID, identifier.MemberID, identifier.Source, identifier.SourceUserID,
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

// Resolve looks up the identifier bound to (source, source_user_id).
// Returns nil when no binding exists.
func (r *IdentifierRepository) Resolve(source, sourceUserID string) (*models.Identifier, error) {
	query := `
		SELECT id, member_id, source, source_user_id, created_at
		FROM member_identifiers
		WHERE source = ? AND source_user_id = ?
	`

	identifier := &models.Identifier{}
	err := r.db.QueryRow(query, source, sourceUserID).Scan(
		&identifier.ID, &identifier.MemberID, &identifier.Source,
		&identifier.SourceUserID, &identifier.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return identifier, nil
}

// GetByMemberID retrieves all identifiers bound to a member
func (r *IdentifierRepository) GetByMemberID(memberID string) ([]*models.Identifier, error) {
	query := `
		SELECT id, member_id, source, source_user_id, created_at
		FROM member_identifiers
		WHERE member_id = ?
		ORDER BY source
	`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identifiers []*models.Identifier
	for rows.Next() {
		identifier := &models.Identifier{}
		err := rows.Scan(
			&identifier.ID, &identifier.MemberID, &identifier.Source,
			&identifier.SourceUserID, &identifier.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		identifiers = append(identifiers, identifier)
	}

	return identifiers, rows.Err()
}

// Delete removes a binding. Rebinding an external identity to a
// different member is delete-then-create, never update-in-place.
func (r *IdentifierRepository) Delete(id string) error {
	query := `DELETE FROM member_identifiers WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

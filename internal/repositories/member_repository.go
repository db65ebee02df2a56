package repositories

import (
	"database/sql"
	"strings"

	"github.com/mertkaya/teampulse/internal/models"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Ping verifies the database is reachable
func (r *MemberRepository) Ping() error {
	return r.db.Ping()
}

// Create creates a new member
func (r *MemberRepository) Create(member *models.Member) error {
	query := `
		INSERT INTO members (
			id, name, email
		) VALUES (?, ?, ?)
	`

	_, err := r.db.Exec(query, member.ID, member.Name, member.Email)
	return err
}

// GetByID retrieves a member by ID
func (r *MemberRepository) GetByID(id string) (*models.Member, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM members WHERE id = ?
	`

	member := &models.Member{}
	err := r.db.QueryRow(query, id).Scan(
		&member.ID, &member.Name, &member.Email, &member.CreatedAt, &member.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return member, nil
}

// GetByName retrieves a member by exact name
func (r *MemberRepository) GetByName(name string) (*models.Member, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM members WHERE name = ?
	`

	member := &models.Member{}
	err := r.db.QueryRow(query, name).Scan(
		&member.ID, &member.Name, &member.Email, &member.CreatedAt, &member.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return member, nil
}

// FindInsensitive retrieves members whose name or email matches the
// given value case-insensitively, oldest first so a first-match policy
// stays deterministic across runs.
func (r *MemberRepository) FindInsensitive(value string) ([]*models.Member, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM members
		WHERE name = ? COLLATE NOCASE OR email = ? COLLATE NOCASE
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query, value, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		err := rows.Scan(
			&member.ID, &member.Name, &member.Email, &member.CreatedAt, &member.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// Update updates an existing member
func (r *MemberRepository) Update(member *models.Member) error {
	query := `
		UPDATE members SET
			name = ?, email = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, member.Name, member.Email, member.ID)
	return err
}

// List retrieves all members ordered by name
func (r *MemberRepository) List() ([]*models.Member, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM members ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		err := rows.Scan(
			&member.ID, &member.Name, &member.Email, &member.CreatedAt, &member.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// GetOrCreateByName gets a member by exact name or creates a new one.
// Registration is idempotent: an existing name returns the existing row.
func (r *MemberRepository) GetOrCreateByName(name string, email *string) (*models.Member, bool, error) {
	member, err := r.GetByName(name)
	if err == nil {
		return member, false, nil
	}

	if err == sql.ErrNoRows {
		member = models.NewMember(name, email)
		if err := r.Create(member); err != nil {
			// Unique constraint violation means another writer won the
			// race; fetch the row it inserted.
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				member, err = r.GetByName(name)
				if err == nil {
					return member, false, nil
				}
			}
			return nil, false, err
		}
		return member, true, nil
	}

	return nil, false, err
}

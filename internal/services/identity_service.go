package services

import (
	"database/sql"
	"fmt"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/repositories"
	"github.com/mertkaya/teampulse/pkg/logger"
	"github.com/sirupsen/logrus"
)

// IdentityService owns the canonical member table and the
// cross-source identifier bindings.
type IdentityService struct {
	memberRepo     *repositories.MemberRepository
	identifierRepo *repositories.IdentifierRepository
}

func NewIdentityService(
	memberRepo *repositories.MemberRepository,
	identifierRepo *repositories.IdentifierRepository,
) *IdentityService {
	return &IdentityService{
		memberRepo:     memberRepo,
		identifierRepo: identifierRepo,
	}
}

// FindByName resolves a member by display name: exact match first,
// then case-insensitive match on name or email. With several
// case-insensitive candidates the oldest row wins; the ambiguity is
// logged so stale duplicates stay visible.
func (s *IdentityService) FindByName(name string) (*models.Member, error) {
	member, err := s.memberRepo.GetByName(name)
	if err == nil {
		return member, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	candidates, err := s.memberRepo.FindInsensitive(name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > 1 {
		logger.WithFields(logrus.Fields{
			"name":    name,
			"matches": len(candidates),
		}).Warn("Ambiguous case-insensitive member match, using oldest")
	}

	return candidates[0], nil
}

// Register returns the ID of the member with this exact name, creating
// the member first when absent. Registering the same name twice is a
// no-op returning the original ID. The second result reports whether a
// new member row was created.
func (s *IdentityService) Register(name string, email *string) (string, bool, error) {
	member, created, err := s.memberRepo.GetOrCreateByName(name, email)
	if err != nil {
		return "", false, fmt.Errorf("failed to register member %q: %w", name, err)
	}

	if created {
		logger.WithFields(logrus.Fields{
			"member_id": member.ID,
			"name":      name,
		}).Info("Registered new member")
	} else if email != nil && *email != "" && (member.Email == nil || *member.Email == "") {
		// Members are never deleted by sync; the only mutation is
		// filling in a missing email.
		member.Email = email
		if err := s.memberRepo.Update(member); err != nil {
			return "", false, fmt.Errorf("failed to update member %q: %w", name, err)
		}
	}

	return member.ID, created, nil
}

// Ping verifies the identity store is reachable. Used at sync start to
// separate systemic store failures from per-member ones.
func (s *IdentityService) Ping() error {
	return s.memberRepo.Ping()
}

// BindIdentifier binds (source, sourceUserID) to a member. A pair
// already bound elsewhere is left untouched: first binding wins, and
// the conflict is logged rather than raised.
func (s *IdentityService) BindIdentifier(memberID, source, sourceUserID string) error {
	identifier := models.NewIdentifier(memberID, source, sourceUserID)

	inserted, err := s.identifierRepo.Create(identifier)
	if err != nil {
		return fmt.Errorf("failed to bind identifier %s/%s: %w", source, sourceUserID, err)
	}

	if !inserted {
		existing, err := s.identifierRepo.Resolve(source, sourceUserID)
		if err != nil {
			return err
		}
		if existing != nil && existing.MemberID != memberID {
			logger.WithFields(logrus.Fields{
				"source":         source,
				"source_user_id": sourceUserID,
				"bound_member":   existing.MemberID,
				"losing_member":  memberID,
			}).Warn("Identifier already bound to another member, keeping first binding")
		}
	}

	return nil
}

// Resolve returns the member ID bound to (source, sourceUserID), or
// "" when no binding exists.
func (s *IdentityService) Resolve(source, sourceUserID string) (string, error) {
	identifier, err := s.identifierRepo.Resolve(source, sourceUserID)
	if err != nil {
		return "", err
	}
	if identifier == nil {
		return "", nil
	}
	return identifier.MemberID, nil
}

// IdentifiersFor returns a member's bindings as source -> source_user_id
func (s *IdentityService) IdentifiersFor(memberID string) (map[string]string, error) {
	identifiers, err := s.identifierRepo.GetByMemberID(memberID)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(identifiers))
	for _, identifier := range identifiers {
		mapping[identifier.Source] = identifier.SourceUserID
	}
	return mapping, nil
}

// ListMembers returns all members ordered by name
func (s *IdentityService) ListMembers() ([]*models.Member, error) {
	return s.memberRepo.List()
}

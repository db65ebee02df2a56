package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/sources"
	"github.com/mertkaya/teampulse/pkg/logger"
	"github.com/sirupsen/logrus"
)

// SyncService reconciles one source adapter's output into the identity
// and activity stores in a single idempotent pass. It is a stateless
// function of (adapter output, current store state); re-running a sync
// with overlapping data converges without duplicates.
type SyncService struct {
	identity *IdentityService
	activity *ActivityService
}

func NewSyncService(identity *IdentityService, activity *ActivityService) *SyncService {
	return &SyncService{
		identity: identity,
		activity: activity,
	}
}

// SyncAdapter collects one window from the adapter and reconciles it
func (s *SyncService) SyncAdapter(ctx context.Context, adapter sources.Adapter, since, until time.Time) (*models.SyncStats, error) {
	mapping, err := adapter.MemberMapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member mapping from %s: %w", adapter.Name(), err)
	}

	details, err := adapter.MemberDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member details from %s: %w", adapter.Name(), err)
	}

	activities, err := adapter.Activities(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities from %s: %w", adapter.Name(), err)
	}

	return s.SyncSource(adapter.Name(), mapping, details, activities)
}

// SyncSource runs the two reconciliation passes for one source.
//
// Pass 1 registers every mapped member and binds its identifier,
// tolerating per-member failures. Pass 2 resolves each raw activity to
// a member and appends it idempotently; unresolvable activities are
// dropped and counted, never retried. Partial failures are reported in
// the returned stats, only a systemic store failure returns an error.
func (s *SyncService) SyncSource(source string, mapping map[string]string, details map[string]models.MemberDetail, activities []models.RawActivity) (*models.SyncStats, error) {
	if err := s.identity.Ping(); err != nil {
		return nil, fmt.Errorf("identity store unreachable: %w", err)
	}

	stats := &models.SyncStats{}
	resolved := s.syncMembers(source, mapping, details, stats)
	s.syncActivities(source, activities, resolved, stats)

	logger.WithFields(logrus.Fields{
		"source":             source,
		"members_registered": stats.MembersRegistered,
		"activities_added":   stats.ActivitiesAdded,
		"errors":             stats.Errors,
	}).Info("Sync pass finished")

	return stats, nil
}

// syncMembers is the member resolution pass. It returns the in-memory
// map lower(source_user_id) -> member_id used by the activity pass.
func (s *SyncService) syncMembers(source string, mapping map[string]string, details map[string]models.MemberDetail, stats *models.SyncStats) map[string]string {
	resolved := make(map[string]string, len(mapping))

	for sourceUserID, displayName := range mapping {
		member, err := s.resolveOrRegister(source, sourceUserID, displayName, details)
		if err != nil {
			stats.Errors++
			logger.WithError(err).WithFields(logrus.Fields{
				"source":         source,
				"source_user_id": sourceUserID,
				"display_name":   displayName,
			}).Error("Failed to register member, continuing")
			continue
		}

		if member.created {
			stats.MembersRegistered++
		}
		resolved[strings.ToLower(sourceUserID)] = member.id
	}

	return resolved
}

type resolvedMember struct {
	id      string
	created bool
}

func (s *SyncService) resolveOrRegister(source, sourceUserID, displayName string, details map[string]models.MemberDetail) (resolvedMember, error) {
	// Prefer the case-preserved identifier from the details block;
	// mapping keys may have been lower-cased by the adapter.
	boundID := sourceUserID
	var email *string
	if detail, ok := details[displayName]; ok {
		if detail.SourceID != "" {
			boundID = detail.SourceID
		}
		if detail.Email != "" {
			e := detail.Email
			email = &e
		}
	}

	existing, err := s.identity.FindByName(displayName)
	if err != nil {
		return resolvedMember{}, err
	}

	var memberID string
	created := false
	if existing != nil {
		memberID = existing.ID
	} else {
		memberID, created, err = s.identity.Register(displayName, email)
		if err != nil {
			return resolvedMember{}, err
		}
	}

	if err := s.identity.BindIdentifier(memberID, source, boundID); err != nil {
		return resolvedMember{}, err
	}

	return resolvedMember{id: memberID, created: created}, nil
}

// syncActivities is the activity resolution pass
func (s *SyncService) syncActivities(source string, activities []models.RawActivity, resolved map[string]string, stats *models.SyncStats) {
	for _, raw := range activities {
		memberID, err := s.resolveActivityMember(source, raw.MemberIdentifier, resolved)
		if err != nil {
			stats.Errors++
			logger.WithError(err).WithField("source", source).Error("Failed to resolve activity member, continuing")
			continue
		}
		if memberID == "" {
			stats.Errors++
			logger.WithFields(logrus.Fields{
				"source":            source,
				"member_identifier": raw.MemberIdentifier,
				"activity_type":     raw.ActivityType,
			}).Warn("Dropping activity with unresolvable member identifier")
			continue
		}

		added, err := s.activity.Append(memberID, source, raw.ActivityType, raw.Timestamp, raw.Metadata, raw.ActivityID)
		if err != nil {
			stats.Errors++
			logger.WithError(err).WithFields(logrus.Fields{
				"source":        source,
				"activity_type": raw.ActivityType,
			}).Error("Failed to append activity, continuing")
			continue
		}
		if added {
			stats.ActivitiesAdded++
		}
	}
}

// resolveActivityMember tries, in order: the in-memory map from the
// member pass, a direct identifier lookup, and finally treating the
// identifier as a display name. Returns "" when all three miss.
func (s *SyncService) resolveActivityMember(source, memberIdentifier string, resolved map[string]string) (string, error) {
	if memberID, ok := resolved[strings.ToLower(memberIdentifier)]; ok {
		return memberID, nil
	}

	memberID, err := s.identity.Resolve(source, memberIdentifier)
	if err != nil {
		return "", err
	}
	if memberID != "" {
		return memberID, nil
	}

	member, err := s.identity.FindByName(memberIdentifier)
	if err != nil {
		return "", err
	}
	if member != nil {
		return member.ID, nil
	}

	return "", nil
}

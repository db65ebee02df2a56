package services

import (
	"sort"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/internal/repositories"
)

const (
	defaultTopRepositories = 10
	defaultTopFiles        = 20
)

// StatisticsService answers "what happened" questions over the stores.
// It is read-only and knows nothing source-specific beyond the
// activity_type string conventions.
type StatisticsService struct {
	identity *IdentityService
	activity *ActivityService
}

func NewStatisticsService(identity *IdentityService, activity *ActivityService) *StatisticsService {
	return &StatisticsService{
		identity: identity,
		activity: activity,
	}
}

// ActivitiesFor resolves a member by name and returns their activities
// for the optional source and window, newest first. An unknown member
// yields an empty result, not an error.
func (s *StatisticsService) ActivitiesFor(memberName, source string, start, end *time.Time, limit int) ([]*models.Activity, error) {
	member, err := s.identity.FindByName(memberName)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	activities, err := s.activity.Query(repositories.ActivityFilter{
		MemberID: member.ID,
		Source:   source,
		Start:    start,
		End:      end,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	if activities == nil {
		// Resolved member with no activity: empty, not "not found"
		activities = []*models.Activity{}
	}
	return activities, nil
}

// StatisticsFor computes a member's snapshot for the window. A member
// that cannot be resolved returns a snapshot carrying only the Error
// field, so team-wide queries can skip it without aborting.
func (s *StatisticsService) StatisticsFor(memberName string, start, end time.Time) (*models.MemberSnapshot, error) {
	snapshot := &models.MemberSnapshot{
		MemberName:      memberName,
		Start:           start,
		End:             end,
		TopRepositories: []models.RepositoryActivity{},
		TopFiles:        []models.FileActivity{},
	}

	member, err := s.identity.FindByName(memberName)
	if err != nil {
		return nil, err
	}
	if member == nil {
		snapshot.Error = "member not found"
		return snapshot, nil
	}

	activities, err := s.activity.Query(repositories.ActivityFilter{
		MemberID: member.ID,
		Start:    &start,
		End:      &end,
	})
	if err != nil {
		return nil, err
	}

	snapshot.Statistics = aggregate(activities)
	snapshot.TopRepositories = TopRepositories(activities, defaultTopRepositories)
	snapshot.TopFiles = TopFiles(changedFiles(activities), defaultTopFiles)
	snapshot.ContributionScore = snapshot.Statistics.Score()
	return snapshot, nil
}

// changedFiles flattens the per-commit file lists, one entry per
// modification.
func changedFiles(activities []*models.Activity) []string {
	var filenames []string
	for _, activity := range activities {
		if activity.ActivityType != models.ActivityTypeCommit {
			continue
		}
		filenames = append(filenames, activity.MetadataStrings("files")...)
	}
	return filenames
}

// TeamSummary computes a snapshot per member and ranks by total commit
// count descending. Equal commit counts keep the input member order
// (stable sort).
func (s *StatisticsService) TeamSummary(memberNames []string, start, end time.Time) (*models.TeamSummary, error) {
	summary := &models.TeamSummary{
		Start:   start,
		End:     end,
		Members: make([]*models.MemberSnapshot, 0, len(memberNames)),
	}

	for _, name := range memberNames {
		snapshot, err := s.StatisticsFor(name, start, end)
		if err != nil {
			return nil, err
		}
		summary.Members = append(summary.Members, snapshot)
	}

	sort.SliceStable(summary.Members, func(i, j int) bool {
		return summary.Members[i].Statistics.Commits.Total > summary.Members[j].Statistics.Commits.Total
	})

	return summary, nil
}

// aggregate partitions activities by type and rolls up the per-type
// counters the snapshot exposes.
func aggregate(activities []*models.Activity) models.Statistics {
	var stats models.Statistics

	for _, activity := range activities {
		switch activity.ActivityType {
		case models.ActivityTypeCommit:
			stats.Commits.Total++
			stats.Commits.Additions += activity.MetadataInt("additions")
			stats.Commits.Deletions += activity.MetadataInt("deletions")
		case models.ActivityTypePullRequest:
			stats.PullRequests.Total++
			switch activity.MetadataString("state") {
			case "merged":
				stats.PullRequests.Merged++
			case "closed":
				stats.PullRequests.Closed++
			default:
				stats.PullRequests.Open++
			}
		case models.ActivityTypeIssue:
			stats.Issues.Total++
			if activity.MetadataString("state") == "closed" {
				stats.Issues.Closed++
			} else {
				stats.Issues.Open++
			}
		case models.ActivityTypeMessage:
			stats.Messages.Total++
		case models.ActivityTypeReaction:
			stats.Messages.Reactions++
		}
	}

	stats.Commits.NetLines = stats.Commits.Additions - stats.Commits.Deletions
	return stats
}

// TopRepositories groups activities by the repository metadata field
// and ranks by commits + pull requests descending. Ties keep
// first-seen order.
func TopRepositories(activities []*models.Activity, limit int) []models.RepositoryActivity {
	if limit <= 0 {
		limit = defaultTopRepositories
	}

	index := make(map[string]int)
	var ranked []models.RepositoryActivity

	for _, activity := range activities {
		repo := activity.MetadataString("repository")
		if repo == "" {
			continue
		}

		i, seen := index[repo]
		if !seen {
			index[repo] = len(ranked)
			ranked = append(ranked, models.RepositoryActivity{Repository: repo})
			i = index[repo]
		}

		switch activity.ActivityType {
		case models.ActivityTypeCommit:
			ranked[i].Commits++
		case models.ActivityTypePullRequest:
			ranked[i].PullRequests++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Commits+ranked[i].PullRequests > ranked[j].Commits+ranked[j].PullRequests
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopFiles groups file change records by filename and ranks by
// modification count descending. Ties keep first-seen order.
func TopFiles(filenames []string, limit int) []models.FileActivity {
	if limit <= 0 {
		limit = defaultTopFiles
	}

	index := make(map[string]int)
	var ranked []models.FileActivity

	for _, filename := range filenames {
		if filename == "" {
			continue
		}
		i, seen := index[filename]
		if !seen {
			index[filename] = len(ranked)
			ranked = append(ranked, models.FileActivity{Filename: filename})
			i = index[filename]
		}
		ranked[i].Modifications++
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Modifications > ranked[j].Modifications
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

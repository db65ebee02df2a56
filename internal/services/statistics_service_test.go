package services

import (
	"testing"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

// seedActivities appends activities for a member inside the window
func seedActivities(t *testing.T, stack *testStack, memberName string, raw []models.RawActivity) {
	t.Helper()

	memberID, _, err := stack.identity.Register(memberName, nil)
	require.NoError(t, err)

	for _, activity := range raw {
		_, err := stack.activity.Append(memberID, "github", activity.ActivityType, activity.Timestamp, activity.Metadata, activity.ActivityID)
		require.NoError(t, err)
	}
}

func at(day int) time.Time {
	return windowStart.AddDate(0, 0, day)
}

func TestStatisticsForBreakdown(t *testing.T) {
	stack := newTestStack(t)

	seedActivities(t, stack, "Kevin", []models.RawActivity{
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(1), Metadata: map[string]interface{}{"repository": "api", "additions": 100, "deletions": 40}},
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(2), Metadata: map[string]interface{}{"repository": "api", "additions": 20, "deletions": 5}},
		{ActivityType: models.ActivityTypePullRequest, Timestamp: at(3), Metadata: map[string]interface{}{"repository": "api", "state": "merged"}},
		{ActivityType: models.ActivityTypePullRequest, Timestamp: at(4), Metadata: map[string]interface{}{"repository": "web", "state": "open"}},
		{ActivityType: models.ActivityTypeIssue, Timestamp: at(5), Metadata: map[string]interface{}{"state": "closed"}},
		{ActivityType: models.ActivityTypeMessage, Timestamp: at(6)},
		{ActivityType: models.ActivityTypeReaction, Timestamp: at(6)},
	})

	snapshot, err := stack.statistics.StatisticsFor("Kevin", windowStart, windowEnd)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Error)

	st := snapshot.Statistics
	assert.Equal(t, 2, st.Commits.Total)
	assert.Equal(t, 120, st.Commits.Additions)
	assert.Equal(t, 45, st.Commits.Deletions)
	assert.Equal(t, 75, st.Commits.NetLines)

	assert.Equal(t, 2, st.PullRequests.Total)
	assert.Equal(t, 1, st.PullRequests.Merged)
	assert.Equal(t, 1, st.PullRequests.Open)
	assert.Equal(t, 0, st.PullRequests.Closed)

	assert.Equal(t, 1, st.Issues.Total)
	assert.Equal(t, 1, st.Issues.Closed)

	assert.Equal(t, 1, st.Messages.Total)
	assert.Equal(t, 1, st.Messages.Reactions)

	// 2*1.0 + 2*2.0 + 1*0.5 + 1*0.3 + 1*0.1
	assert.Equal(t, 6.9, snapshot.ContributionScore)

	require.Len(t, snapshot.TopRepositories, 2)
	assert.Equal(t, "api", snapshot.TopRepositories[0].Repository)
	assert.Equal(t, 2, snapshot.TopRepositories[0].Commits)
	assert.Equal(t, 1, snapshot.TopRepositories[0].PullRequests)
}

func TestStatisticsForRespectsWindow(t *testing.T) {
	stack := newTestStack(t)

	seedActivities(t, stack, "Kevin", []models.RawActivity{
		{ActivityType: models.ActivityTypeCommit, Timestamp: windowStart.AddDate(0, 0, -10)}, // before
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(5)},                          // inside
		{ActivityType: models.ActivityTypeCommit, Timestamp: windowEnd.AddDate(0, 0, 10)},    // after
	})

	snapshot, err := stack.statistics.StatisticsFor("Kevin", windowStart, windowEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Statistics.Commits.Total)
}

func TestStatisticsForUnknownMemberIsStructuredNotFound(t *testing.T) {
	stack := newTestStack(t)

	snapshot, err := stack.statistics.StatisticsFor("Nobody", windowStart, windowEnd)
	require.NoError(t, err)
	assert.Equal(t, "member not found", snapshot.Error)
	assert.Equal(t, "Nobody", snapshot.MemberName)
	assert.Zero(t, snapshot.Statistics.Commits.Total)
}

func TestActivitiesForUnknownMemberReturnsNil(t *testing.T) {
	stack := newTestStack(t)

	activities, err := stack.statistics.ActivitiesFor("Nobody", "", nil, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, activities)
}

func TestTeamSummaryRanksByCommitsWithStableTies(t *testing.T) {
	stack := newTestStack(t)

	commits := func(n int, day int) []models.RawActivity {
		var raw []models.RawActivity
		for i := 0; i < n; i++ {
			raw = append(raw, models.RawActivity{
				ActivityType: models.ActivityTypeCommit,
				Timestamp:    at(day).Add(time.Duration(i) * time.Minute),
			})
		}
		return raw
	}

	seedActivities(t, stack, "Alice", commits(2, 1))
	seedActivities(t, stack, "Bob", commits(5, 2))
	seedActivities(t, stack, "Carol", commits(2, 3))

	// Input order: Alice, Carol, Bob. Alice and Carol tie on commits;
	// their input order must survive the sort.
	summary, err := stack.statistics.TeamSummary([]string{"Alice", "Carol", "Bob"}, windowStart, windowEnd)
	require.NoError(t, err)
	require.Len(t, summary.Members, 3)

	assert.Equal(t, "Bob", summary.Members[0].MemberName)
	assert.Equal(t, "Alice", summary.Members[1].MemberName)
	assert.Equal(t, "Carol", summary.Members[2].MemberName)
}

func TestTeamSummarySkipsUnknownMembers(t *testing.T) {
	stack := newTestStack(t)

	seedActivities(t, stack, "Alice", []models.RawActivity{
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(1)},
	})

	summary, err := stack.statistics.TeamSummary([]string{"Alice", "Ghost"}, windowStart, windowEnd)
	require.NoError(t, err)
	require.Len(t, summary.Members, 2)

	assert.Equal(t, "Alice", summary.Members[0].MemberName)
	assert.Equal(t, "Ghost", summary.Members[1].MemberName)
	assert.Equal(t, "member not found", summary.Members[1].Error)
}

func TestTopRepositories(t *testing.T) {
	activities := []*models.Activity{
		{ActivityType: models.ActivityTypeCommit, Metadata: map[string]interface{}{"repository": "api"}},
		{ActivityType: models.ActivityTypeCommit, Metadata: map[string]interface{}{"repository": "web"}},
		{ActivityType: models.ActivityTypePullRequest, Metadata: map[string]interface{}{"repository": "web"}},
		{ActivityType: models.ActivityTypeMessage, Metadata: map[string]interface{}{"repository": "web"}}, // not counted
		{ActivityType: models.ActivityTypeCommit, Metadata: map[string]interface{}{}},                     // no repository
	}

	ranked := TopRepositories(activities, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "web", ranked[0].Repository)
	assert.Equal(t, 1, ranked[0].Commits)
	assert.Equal(t, 1, ranked[0].PullRequests)
	assert.Equal(t, "api", ranked[1].Repository)
}

func TestTopRepositoriesTieKeepsFirstSeenOrder(t *testing.T) {
	activities := []*models.Activity{
		{ActivityType: models.ActivityTypeCommit, Metadata: map[string]interface{}{"repository": "zeta"}},
		{ActivityType: models.ActivityTypeCommit, Metadata: map[string]interface{}{"repository": "alpha"}},
	}

	ranked := TopRepositories(activities, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "zeta", ranked[0].Repository)
	assert.Equal(t, "alpha", ranked[1].Repository)
}

func TestTopRepositoriesLimit(t *testing.T) {
	var activities []*models.Activity
	for _, repo := range []string{"a", "b", "c"} {
		activities = append(activities, &models.Activity{
			ActivityType: models.ActivityTypeCommit,
			Metadata:     map[string]interface{}{"repository": repo},
		})
	}

	ranked := TopRepositories(activities, 2)
	assert.Len(t, ranked, 2)
}

func TestStatisticsForTopFilesFromCommitMetadata(t *testing.T) {
	stack := newTestStack(t)

	seedActivities(t, stack, "Kevin", []models.RawActivity{
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(1), Metadata: map[string]interface{}{"files": []string{"main.go", "sync.go"}}},
		{ActivityType: models.ActivityTypeCommit, Timestamp: at(2), Metadata: map[string]interface{}{"files": []string{"main.go"}}},
		// Non-commit activities never contribute file modifications
		{ActivityType: models.ActivityTypePullRequest, Timestamp: at(3), Metadata: map[string]interface{}{"files": []string{"ignored.go"}}},
	})

	snapshot, err := stack.statistics.StatisticsFor("Kevin", windowStart, windowEnd)
	require.NoError(t, err)

	require.Len(t, snapshot.TopFiles, 2)
	assert.Equal(t, "main.go", snapshot.TopFiles[0].Filename)
	assert.Equal(t, 2, snapshot.TopFiles[0].Modifications)
	assert.Equal(t, "sync.go", snapshot.TopFiles[1].Filename)
	assert.Equal(t, 1, snapshot.TopFiles[1].Modifications)
}

func TestTopFiles(t *testing.T) {
	files := []string{"main.go", "sync.go", "main.go", "main.go", "sync.go", "readme.md", ""}

	ranked := TopFiles(files, 20)
	require.Len(t, ranked, 3)
	assert.Equal(t, "main.go", ranked[0].Filename)
	assert.Equal(t, 3, ranked[0].Modifications)
	assert.Equal(t, "sync.go", ranked[1].Filename)
	assert.Equal(t, "readme.md", ranked[2].Filename)
}

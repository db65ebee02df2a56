package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mertkaya/teampulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *models.MemberSnapshot {
	return &models.MemberSnapshot{
		MemberName: "Kevin",
		Start:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Statistics: models.Statistics{
			Commits:      models.CommitStats{Total: 2, Additions: 120, Deletions: 45, NetLines: 75},
			PullRequests: models.PullRequestStats{Total: 1, Merged: 1},
			Issues:       models.IssueStats{Total: 1, Closed: 1},
			Messages:     models.MessageStats{Total: 10, Reactions: 5},
		},
		TopRepositories:   []models.RepositoryActivity{{Repository: "api", Commits: 2, PullRequests: 1}},
		ContributionScore: 7.5,
	}
}

func TestSnapshotJSONFieldNamesAreStable(t *testing.T) {
	service := NewReportService()

	data, err := service.SnapshotJSON(sampleSnapshot())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// These paths are the presentation contract; formatters depend on
	// them round-tripping losslessly.
	statistics := decoded["statistics"].(map[string]interface{})
	commits := statistics["commits"].(map[string]interface{})
	assert.Equal(t, float64(2), commits["total"])
	assert.Equal(t, float64(120), commits["additions"])

	prs := statistics["pull_requests"].(map[string]interface{})
	assert.Equal(t, float64(1), prs["merged"])

	repos := decoded["top_repositories"].([]interface{})
	first := repos[0].(map[string]interface{})
	assert.Equal(t, "api", first["repository"])

	assert.Equal(t, 7.5, decoded["contribution_score"])
	assert.Equal(t, "Kevin", decoded["member_name"])
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	service := NewReportService()
	original := sampleSnapshot()

	data, err := service.SnapshotJSON(original)
	require.NoError(t, err)

	var decoded models.MemberSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Statistics, decoded.Statistics)
	assert.Equal(t, original.ContributionScore, decoded.ContributionScore)
	assert.Equal(t, original.TopRepositories, decoded.TopRepositories)
}

func TestTeamSummaryMarkdown(t *testing.T) {
	service := NewReportService()

	summary := &models.TeamSummary{
		Start:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Members: []*models.MemberSnapshot{sampleSnapshot(), {MemberName: "Ghost", Error: "member not found"}},
	}

	markdown := service.TeamSummaryMarkdown(summary)

	assert.True(t, strings.HasPrefix(markdown, "# Team Activity 2026-02-01 to 2026-03-01"))
	assert.Contains(t, markdown, "| Kevin | 2 | +120/-45 | 1 (1) | 1 | 10 | 7.50 |")
	assert.Contains(t, markdown, "| Ghost | - | - | - | - | - | member not found |")
	// Generated reports stay plain ASCII
	assert.False(t, strings.ContainsRune(markdown, '—'))
}

func TestTeamSummaryXLSX(t *testing.T) {
	service := NewReportService()

	summary := &models.TeamSummary{
		Members: []*models.MemberSnapshot{sampleSnapshot()},
	}

	file, err := service.TeamSummaryXLSX(summary)
	require.NoError(t, err)
	defer file.Close()

	name, err := file.GetCellValue("Team Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Member", name)

	member, err := file.GetCellValue("Team Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Kevin", member)

	commits, err := file.GetCellValue("Team Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", commits)
}

package models

import (
	"math"
	"time"
)

// Contribution score weights per activity type. The score is a plain
// weighted linear sum, rounded to two decimals: no normalization by
// team size, no recency decay.
const (
	ScoreWeightCommit      = 1.0
	ScoreWeightPullRequest = 2.0
	ScoreWeightIssue       = 0.5
	ScoreWeightMessage     = 0.3
	ScoreWeightReaction    = 0.1
)

// CommitStats aggregates commit-like activities in a window
type CommitStats struct {
	Total     int `json:"total"`
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	NetLines  int `json:"net_lines"`
}

// PullRequestStats aggregates pull request activities by state
type PullRequestStats struct {
	Total  int `json:"total"`
	Merged int `json:"merged"`
	Closed int `json:"closed"`
	Open   int `json:"open"`
}

// IssueStats aggregates issue activities by state
type IssueStats struct {
	Total  int `json:"total"`
	Closed int `json:"closed"`
	Open   int `json:"open"`
}

// MessageStats aggregates chat activity
type MessageStats struct {
	Total     int `json:"total"`
	Reactions int `json:"reactions"`
}

// RepositoryActivity is one row of the per-repository rollup
type RepositoryActivity struct {
	Repository   string `json:"repository"`
	Commits      int    `json:"commits"`
	PullRequests int    `json:"pull_requests"`
}

// FileActivity is one row of the per-file rollup
type FileActivity struct {
	Filename      string `json:"filename"`
	Modifications int    `json:"modifications"`
}

// Statistics is the per-type breakdown inside a snapshot
type Statistics struct {
	Commits      CommitStats      `json:"commits"`
	PullRequests PullRequestStats `json:"pull_requests"`
	Issues       IssueStats       `json:"issues"`
	Messages     MessageStats     `json:"messages"`
}

// MemberSnapshot is a derived, non-persisted aggregate for one member
// over a time window. It is a pure function of the activity log at
// query time. A failed lookup sets Error and leaves the rest zeroed so
// batch consumers can skip the member without aborting.
type MemberSnapshot struct {
	MemberName        string               `json:"member_name"`
	Start             time.Time            `json:"start"`
	End               time.Time            `json:"end"`
	Statistics        Statistics           `json:"statistics"`
	TopRepositories   []RepositoryActivity `json:"top_repositories"`
	TopFiles          []FileActivity       `json:"top_files"`
	ContributionScore float64              `json:"contribution_score"`
	Error             string               `json:"error,omitempty"`
}

// TeamSummary ranks member snapshots for one window
type TeamSummary struct {
	Start   time.Time         `json:"start"`
	End     time.Time         `json:"end"`
	Members []*MemberSnapshot `json:"members"`
}

// ContributionScore computes the weighted score for the given per-type
// counts, rounded to two decimal places.
func ContributionScore(commits, pullRequests, issues, messages, reactions int) float64 {
	score := float64(commits)*ScoreWeightCommit +
		float64(pullRequests)*ScoreWeightPullRequest +
		float64(issues)*ScoreWeightIssue +
		float64(messages)*ScoreWeightMessage +
		float64(reactions)*ScoreWeightReaction
	return math.Round(score*100) / 100
}

// Score returns the contribution score for this snapshot's counts
func (s *Statistics) Score() float64 {
	return ContributionScore(
		s.Commits.Total,
		s.PullRequests.Total,
		s.Issues.Total,
		s.Messages.Total,
		s.Messages.Reactions,
	)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributionScore(t *testing.T) {
	testCases := []struct {
		name          string
		commits       int
		pullRequests  int
		issues        int
		messages      int
		reactions     int
		expectedScore float64
	}{
		{
			name:          "Documented example",
			commits:       2,
			pullRequests:  1,
			issues:        0,
			messages:      10,
			reactions:     5,
			expectedScore: 7.50, // 2*1.0 + 1*2.0 + 0*0.5 + 10*0.3 + 5*0.1
		},
		{
			name:          "Zero activity",
			expectedScore: 0,
		},
		{
			name:          "Commits only",
			commits:       7,
			expectedScore: 7.0,
		},
		{
			name:          "Rounding to two decimals",
			reactions:     1,
			messages:      1,
			expectedScore: 0.4, // 0.3 + 0.1, no float drift
		},
		{
			name:          "All weights",
			commits:       1,
			pullRequests:  1,
			issues:        1,
			messages:      1,
			reactions:     1,
			expectedScore: 3.9,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := ContributionScore(tc.commits, tc.pullRequests, tc.issues, tc.messages, tc.reactions)
			assert.Equal(t, tc.expectedScore, score)
		})
	}
}

func TestStatisticsScore(t *testing.T) {
	stats := &Statistics{
		Commits:      CommitStats{Total: 2},
		PullRequests: PullRequestStats{Total: 1},
		Messages:     MessageStats{Total: 10, Reactions: 5},
	}

	assert.Equal(t, 7.50, stats.Score())
}

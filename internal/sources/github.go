package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/mertkaya/teampulse/internal/models"
	"github.com/mertkaya/teampulse/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

const githubSourceName = "github"

// maxConcurrentRepos bounds the per-repository fan-out
const maxConcurrentRepos = 4

// GitHubAdapter feeds org member identities and commit / pull request /
// issue activities from the GitHub API.
type GitHubAdapter struct {
	client *github.Client
	org    string
	repos  []string
}

func NewGitHubAdapter(cfg *config.Config) *GitHubAdapter {
	client := github.NewClient(nil)
	if cfg.GitHub.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	return &GitHubAdapter{
		client: client,
		org:    cfg.GitHub.Org,
		repos:  cfg.GitHub.Repos,
	}
}

func (a *GitHubAdapter) Name() string {
	return githubSourceName
}

// MemberMapping lists org members as lower(login) -> display name
func (a *GitHubAdapter) MemberMapping(ctx context.Context) (map[string]string, error) {
	users, err := a.listOrgMembers(ctx)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]string, len(users))
	for _, user := range users {
		login := user.GetLogin()
		mapping[strings.ToLower(login)] = a.displayName(ctx, login)
	}
	return mapping, nil
}

// MemberDetails returns display name -> email and original-case login
func (a *GitHubAdapter) MemberDetails(ctx context.Context) (map[string]models.MemberDetail, error) {
	users, err := a.listOrgMembers(ctx)
	if err != nil {
		return nil, err
	}

	details := make(map[string]models.MemberDetail, len(users))
	for _, user := range users {
		login := user.GetLogin()
		full, _, err := a.client.Users.Get(ctx, login)
		if err != nil {
			// Profile fetch failures degrade to login-only details
			details[login] = models.MemberDetail{SourceID: login}
			continue
		}

		name := full.GetName()
		if name == "" {
			name = login
		}
		details[name] = models.MemberDetail{
			Email:    full.GetEmail(),
			SourceID: login,
		}
	}
	return details, nil
}

// Activities collects commits, pull requests and issues for the window
// across the configured repositories, fanning out per repository.
func (a *GitHubAdapter) Activities(ctx context.Context, since, until time.Time) ([]models.RawActivity, error) {
	var mu sync.Mutex
	var activities []models.RawActivity

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRepos)

	for _, repo := range a.repos {
		repo := repo
		g.Go(func() error {
			collected, err := a.collectRepo(gctx, repo, since, until)
			if err != nil {
				return fmt.Errorf("failed to collect %s/%s: %w", a.org, repo, err)
			}
			mu.Lock()
			activities = append(activities, collected...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (a *GitHubAdapter) collectRepo(ctx context.Context, repo string, since, until time.Time) ([]models.RawActivity, error) {
	var activities []models.RawActivity

	commits, err := a.collectCommits(ctx, repo, since, until)
	if err != nil {
		return nil, err
	}
	activities = append(activities, commits...)

	prs, err := a.collectPullRequests(ctx, repo, since, until)
	if err != nil {
		return nil, err
	}
	activities = append(activities, prs...)

	issues, err := a.collectIssues(ctx, repo, since, until)
	if err != nil {
		return nil, err
	}
	activities = append(activities, issues...)

	return activities, nil
}

func (a *GitHubAdapter) collectCommits(ctx context.Context, repo string, since, until time.Time) ([]models.RawActivity, error) {
	opts := &github.CommitsListOptions{
		Since:       since,
		Until:       until,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var activities []models.RawActivity
	for {
		commits, resp, err := a.client.Repositories.ListCommits(ctx, a.org, repo, opts)
		if err != nil {
			return nil, err
		}

		for _, commit := range commits {
			login := commit.GetAuthor().GetLogin()
			if login == "" {
				// Unmatched git author; fall through to name-based
				// resolution in the sync engine.
				login = commit.GetCommit().GetAuthor().GetName()
			}

			activityID := fmt.Sprintf("github:commit:%s", commit.GetSHA())
			detail, _, err := a.client.Repositories.GetCommit(ctx, a.org, repo, commit.GetSHA(), nil)
			metadata := map[string]interface{}{
				"repository": repo,
				"sha":        commit.GetSHA(),
				"message":    commit.GetCommit().GetMessage(),
			}
			if err == nil {
				if stats := detail.GetStats(); stats != nil {
					metadata["additions"] = stats.GetAdditions()
					metadata["deletions"] = stats.GetDeletions()
				}
				if len(detail.Files) > 0 {
					files := make([]string, 0, len(detail.Files))
					for _, file := range detail.Files {
						files = append(files, file.GetFilename())
					}
					metadata["files"] = files
				}
			}

			activities = append(activities, models.RawActivity{
				MemberIdentifier: login,
				ActivityType:     models.ActivityTypeCommit,
				Timestamp:        commit.GetCommit().GetAuthor().GetDate().Time,
				Metadata:         metadata,
				ActivityID:       &activityID,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return activities, nil
}

func (a *GitHubAdapter) collectPullRequests(ctx context.Context, repo string, since, until time.Time) ([]models.RawActivity, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var activities []models.RawActivity
	for {
		prs, resp, err := a.client.PullRequests.List(ctx, a.org, repo, opts)
		if err != nil {
			return nil, err
		}

		done := false
		for _, pr := range prs {
			created := pr.GetCreatedAt().Time
			if created.Before(since) {
				done = true
				break
			}
			if created.After(until) {
				continue
			}

			state := pr.GetState()
			if pr.MergedAt != nil {
				state = "merged"
			}

			activityID := fmt.Sprintf("github:pr:%s#%d", repo, pr.GetNumber())
			activities = append(activities, models.RawActivity{
				MemberIdentifier: pr.GetUser().GetLogin(),
				ActivityType:     models.ActivityTypePullRequest,
				Timestamp:        created,
				Metadata: map[string]interface{}{
					"repository": repo,
					"number":     pr.GetNumber(),
					"title":      pr.GetTitle(),
					"state":      state,
				},
				ActivityID: &activityID,
			})
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return activities, nil
}

func (a *GitHubAdapter) collectIssues(ctx context.Context, repo string, since, until time.Time) ([]models.RawActivity, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var activities []models.RawActivity
	for {
		issues, resp, err := a.client.Issues.ListByRepo(ctx, a.org, repo, opts)
		if err != nil {
			return nil, err
		}

		for _, issue := range issues {
			// The issues API also returns pull requests
			if issue.IsPullRequest() {
				continue
			}
			created := issue.GetCreatedAt().Time
			if created.After(until) || created.Before(since) {
				continue
			}

			activityID := fmt.Sprintf("github:issue:%s#%d", repo, issue.GetNumber())
			activities = append(activities, models.RawActivity{
				MemberIdentifier: issue.GetUser().GetLogin(),
				ActivityType:     models.ActivityTypeIssue,
				Timestamp:        created,
				Metadata: map[string]interface{}{
					"repository": repo,
					"number":     issue.GetNumber(),
					"title":      issue.GetTitle(),
					"state":      issue.GetState(),
				},
				ActivityID: &activityID,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return activities, nil
}

// listOrgMembers fetches all organization members
func (a *GitHubAdapter) listOrgMembers(ctx context.Context) ([]*github.User, error) {
	opts := &github.ListMembersOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var users []*github.User
	for {
		members, resp, err := a.client.Organizations.ListMembers(ctx, a.org, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of org %s: %w", a.org, err)
		}
		users = append(users, members...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return users, nil
}

// displayName resolves a login to the user's profile name, falling
// back to the login itself.
func (a *GitHubAdapter) displayName(ctx context.Context, login string) string {
	user, _, err := a.client.Users.Get(ctx, login)
	if err != nil || user.GetName() == "" {
		return login
	}
	return user.GetName()
}

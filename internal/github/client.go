// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	custom_errors "gitmind-explorer/internal/errors"
	"gitmind-explorer/internal/model"
)

// RecentRepositoriesLimit is the size of the repository window shown per account.
const RecentRepositoriesLimit = 6

// Client is a wrapper around the go-github client.
// Requests are unauthenticated; the public rate limit applies.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// An empty baseURL targets the public GitHub API.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	gh := github.NewClient(&http.Client{Timeout: timeout})
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// GetAccount fetches the public profile for handle.
// A non-success status yields *ErrAccountNotFound; anything else is a *NetworkError.
func (c *Client) GetAccount(ctx context.Context, handle string) (*model.Account, error) {
	c.logger.Debug("Fetching account", "handle", handle)

	segment, ok := pathSegment(handle)
	if !ok {
		return nil, &custom_errors.ErrAccountNotFound{Handle: handle}
	}
	user, resp, err := c.gh.Users.Get(ctx, segment)
	if err != nil {
		if status := statusOf(resp, err); status != 0 && !isSuccess(status) {
			return nil, &custom_errors.ErrAccountNotFound{Handle: handle, StatusCode: status}
		}
		return nil, &custom_errors.NetworkError{Op: "get account", Err: err}
	}
	if user.GetLogin() == "" {
		return nil, &custom_errors.NetworkError{Op: "get account", Err: errors.New("response has no login")}
	}
	return toInternalAccount(user), nil
}

// ListRecentRepositories fetches the most recently updated repositories of handle,
// in the order the API returns them. Failures are wrapped in ErrRepositoryFetchDegraded.
func (c *Client) ListRecentRepositories(ctx context.Context, handle string) ([]model.RepositorySummary, error) {
	c.logger.Debug("Fetching repositories", "handle", handle)

	segment, ok := pathSegment(handle)
	if !ok {
		return nil, fmt.Errorf("%w: invalid handle %q", custom_errors.ErrRepositoryFetchDegraded, handle)
	}
	opts := &github.RepositoryListByUserOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: RecentRepositoriesLimit,
		},
	}
	repos, resp, err := c.gh.Repositories.ListByUser(ctx, segment, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list repositories for %q (status %d): %v",
			custom_errors.ErrRepositoryFetchDegraded, handle, statusOf(resp, err), err)
	}

	if len(repos) > RecentRepositoriesLimit {
		repos = repos[:RecentRepositoriesLimit]
	}
	summaries := make([]model.RepositorySummary, 0, len(repos))
	for _, r := range repos {
		summaries = append(summaries, toInternalRepository(r))
	}
	return summaries, nil
}

// pathSegment escapes handle for use as a single URL path segment.
// Handles that could address another endpoint are rejected.
func pathSegment(handle string) (string, bool) {
	if handle == "" || handle == "." || handle == ".." || strings.ContainsAny(handle, "/\\?#%") {
		return "", false
	}
	return url.PathEscape(handle), true
}

// toInternalAccount translates a github.User object to our internal model.Account.
func toInternalAccount(u *github.User) *model.Account {
	return &model.Account{
		Login:       u.GetLogin(),
		Name:        nonEmpty(u.Name),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         nonEmpty(u.Bio),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		HTMLURL:     u.GetHTMLURL(),
		Location:    nonEmpty(u.Location),
	}
}

// toInternalRepository translates a github.Repository object to our internal model.RepositorySummary.
func toInternalRepository(r *github.Repository) model.RepositorySummary {
	return model.RepositorySummary{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: nonEmpty(r.Description),
		StarsCount:  r.GetStargazersCount(),
		ForksCount:  r.GetForksCount(),
		Language:    nonEmpty(r.Language),
		HTMLURL:     r.GetHTMLURL(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

// statusOf returns the HTTP status behind a failed call, or 0 when no response arrived.
func statusOf(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}
	return 0
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// Package release queries the GitHub releases API for launcher bundle
// releases and compares them against the running version.
package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// TokenKey is the keyring key holding the optional GitHub API token.
const TokenKey = "github-token"

// ProbeTimeout bounds the single network probe. There is no retry; a
// failed probe is reported, not repeated.
const ProbeTimeout = 10 * time.Second

// ErrNoReleases is returned when the repository has no releases.
var ErrNoReleases = errors.New("repository has no releases")

// Release is the subset of the GitHub release object we consume.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
}

// Client talks to the GitHub releases API.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
}

// NewClient creates a release client. token may be empty; it is only
// needed to avoid anonymous rate limits.
func NewClient(token string) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 0 // single attempt with a fixed timeout
	hc.HTTPClient.Timeout = ProbeTimeout
	hc.Logger = nil

	return &Client{
		http:    hc,
		baseURL: "https://api.github.com",
		token:   token,
	}
}

// Latest fetches the most recent non-draft release of owner/repo.
func (c *Client) Latest(ctx context.Context, owner, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release probe failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s", ErrNoReleases, owner, repo)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, fmt.Errorf("release probe rate limited (status %d): configure an API token with 'wslforge release token set'", resp.StatusCode)
	default:
		return nil, fmt.Errorf("release probe returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read release response: %w", err)
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("failed to parse release response: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release response has no tag name")
	}
	return &rel, nil
}

// Package github is a lightweight read-only client for the two GitHub REST
// endpoints the assistant depends on: recursive tree listings and file
// contents. It deliberately supports nothing else (no auth, no writes,
// no pagination) because the documentation repository is public and small.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

const (
	// APIBase is the base URL for the GitHub REST API.
	APIBase = "https://api.github.com"

	// MaxFileSize is the per-file size ceiling in bytes. Files larger than
	// this are skipped, not fetched; documentation files should never be
	// anywhere near it.
	MaxFileSize = 500_000

	// DefaultFetchInterval paces per-file content fetches to stay friendly
	// with GitHub's unauthenticated rate limits. Pacing is a courtesy, not
	// a correctness requirement.
	DefaultFetchInterval = 100 * time.Millisecond

	// requestTimeout bounds a single API call.
	requestTimeout = 30 * time.Second
)

// DefaultBranches is the ordered list of branch names probed when listing
// the repository tree. The first branch that resolves wins.
var DefaultBranches = []string{"main", "master"}

var (
	// ErrRepositoryUnavailable indicates the tree listing failed on every
	// candidate branch.
	ErrRepositoryUnavailable = errors.New("documentation repository unavailable")

	// ErrFileSkipped indicates a single file could not be used (oversized,
	// unexpected encoding, or undecodable). Callers treat this as a
	// per-file condition, never as a batch failure.
	ErrFileSkipped = errors.New("file skipped")
)

// Config configures a Client. Owner and Repo are required; everything else
// has a sensible default.
type Config struct {
	Owner string
	Repo  string

	// BaseURL overrides APIBase. Tests point this at an httptest server.
	BaseURL string

	// Branches overrides DefaultBranches.
	Branches []string

	// FetchInterval overrides DefaultFetchInterval. Zero or negative
	// disables pacing entirely.
	FetchInterval time.Duration

	// HTTPClient overrides the default client.
	HTTPClient *http.Client

	Logger log.Logger
}

// Client is a GitHub REST API client scoped to one repository.
type Client struct {
	owner      string
	repo       string
	baseURL    string
	branches   []string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     log.Logger
}

// New creates a new Client for the configured repository.
func New(cfg Config) (*Client, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github: owner and repo are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = APIBase
	}
	branches := cfg.Branches
	if len(branches) == 0 {
		branches = DefaultBranches
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	limit := rate.Inf
	if cfg.FetchInterval > 0 {
		limit = rate.Every(cfg.FetchInterval)
	} else if cfg.FetchInterval == 0 {
		limit = rate.Every(DefaultFetchInterval)
	}

	return &Client{
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		branches:   branches,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}, nil
}

// Tree lists all files in the repository recursively. It probes the
// candidate branches in order and returns the entries of the first branch
// that resolves, together with the branch name. If no branch resolves it
// returns ErrRepositoryUnavailable.
func (c *Client) Tree(ctx context.Context) ([]TreeEntry, string, error) {
	for _, branch := range c.branches {
		url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
			c.baseURL, c.owner, c.repo, branch)

		var tr treeResponse
		err := c.get(ctx, url, &tr)
		if err != nil {
			// Context errors abort the probe; anything else means
			// "this branch does not resolve, try the next one".
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			c.logger.Debug("branch did not resolve",
				"branch", branch, "error", err)
			continue
		}

		if tr.Truncated {
			c.logger.Warn("tree listing truncated by GitHub",
				"branch", branch, "entries", len(tr.Tree))
		}
		return tr.Tree, branch, nil
	}

	return nil, "", fmt.Errorf("%w: no candidate branch resolved for %s/%s",
		ErrRepositoryUnavailable, c.owner, c.repo)
}

// FileContent fetches and decodes the content of one file.
//
// Per-file failure policy: oversized files, payloads not base64-encoded,
// and content that does not decode to valid UTF-8 all return ErrFileSkipped
// so the caller can exclude the file and continue the batch.
func (c *Client) FileContent(ctx context.Context, path string) (string, error) {
	// Pace requests so a large repository does not hammer the API.
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, path)

	var cr contentsResponse
	if err := c.get(ctx, url, &cr); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %s: %v", ErrFileSkipped, path, err)
	}

	if cr.Size > MaxFileSize {
		return "", fmt.Errorf("%w: %s: %d bytes exceeds ceiling", ErrFileSkipped, path, cr.Size)
	}
	if cr.Encoding != "base64" {
		return "", fmt.Errorf("%w: %s: unsupported encoding %q", ErrFileSkipped, path, cr.Encoding)
	}

	// GitHub inserts newlines into base64 payloads.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("%w: %s: decoding base64: %v", ErrFileSkipped, path, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s: content is not valid UTF-8", ErrFileSkipped, path)
	}

	return string(raw), nil
}

// get performs an HTTP GET and unmarshals the JSON response into result.
func (c *Client) get(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

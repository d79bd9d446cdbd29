package docs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/justentropy-lol/entropy-assistant/internal/github"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

// CacheTTL is how long a successful fetch stays fresh. Within this window
// Refresh performs no network activity at all.
const CacheTTL = 2 * time.Hour

// DefaultBranch is reported by Branch before any fetch has succeeded.
// Citation links need a branch name even when the cache is cold.
const DefaultBranch = "main"

// ErrNoDocuments indicates the tree listing succeeded but no file matched
// the documentation-extension filter.
var ErrNoDocuments = errors.New("no documentation files found")

// DocumentSet maps a file path to its full text content.
type DocumentSet map[string]string

// Source lists and fetches repository files. *github.Client implements it.
type Source interface {
	// Tree lists all files recursively and reports the branch that resolved.
	Tree(ctx context.Context) ([]github.TreeEntry, string, error)

	// FileContent fetches and decodes one file. A github.ErrFileSkipped
	// return excludes the file without failing the batch.
	FileContent(ctx context.Context, path string) (string, error)
}

// CacheConfig configures a Cache. Source is required.
type CacheConfig struct {
	Source Source

	// TTL overrides CacheTTL. Intended for tests.
	TTL time.Duration

	// Now overrides time.Now. Intended for tests.
	Now func() time.Time

	Logger log.Logger
}

// Cache holds the documentation snapshot for one assistant instance.
//
// The snapshot is replaced wholesale on every successful refresh, never
// merged, so no key from a stale fetch can outlive the fetch that produced
// it. A mutex serializes refreshes; concurrent refreshes would be harmless
// (idempotent replacement) but would duplicate remote fetches.
type Cache struct {
	mu     sync.Mutex
	source Source
	ttl    time.Duration
	now    func() time.Time
	logger log.Logger

	documents DocumentSet
	branch    string
	fetchedAt time.Time // zero until the first successful fetch
}

// NewCache creates a documentation cache. The cache starts empty and
// invalid; the first Refresh populates it.
func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("docs: source is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = CacheTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Cache{
		source: cfg.Source,
		ttl:    ttl,
		now:    now,
		logger: logger,
		branch: DefaultBranch,
	}, nil
}

// Valid reports whether a prior successful fetch exists and is still within
// the TTL window. A freshly constructed cache is invalid.
func (c *Cache) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Cache) validLocked() bool {
	if c.fetchedAt.IsZero() {
		return false
	}
	return c.now().Sub(c.fetchedAt) < c.ttl
}

// Documents returns the current snapshot. Nil before the first successful
// fetch. Callers must treat the returned map as read-only.
func (c *Cache) Documents() DocumentSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.documents
}

// Branch returns the branch name the snapshot was listed from. Before any
// successful fetch it returns DefaultBranch.
func (c *Cache) Branch() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.branch
}

// Refresh returns the current snapshot, fetching it first when the cache is
// invalid or empty.
//
// Behavior on failure:
//   - Tree listing failed on every branch: any previously fetched snapshot
//     is returned unchanged (stale beats nothing); with no prior snapshot
//     the error surfaces as github.ErrRepositoryUnavailable.
//   - No file matched the documentation filter: ErrNoDocuments, prior
//     snapshot untouched.
//   - Individual file failures: skipped silently, batch continues.
func (c *Cache) Refresh(ctx context.Context) (DocumentSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// At most one fetch per TTL window.
	if c.validLocked() && len(c.documents) > 0 {
		return c.documents, nil
	}

	entries, branch, err := c.source.Tree(ctx)
	if err != nil {
		if !c.fetchedAt.IsZero() && len(c.documents) > 0 {
			c.logger.Warn("tree listing failed, serving stale documentation",
				"age", c.now().Sub(c.fetchedAt), "error", err)
			return c.documents, nil
		}
		return nil, fmt.Errorf("refreshing documentation: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsFile() && IsDocumentation(e.Path) {
			paths = append(paths, e.Path)
		}
	}
	if len(paths) == 0 {
		return DocumentSet{}, ErrNoDocuments
	}

	fetched := make(DocumentSet, len(paths))
	for _, p := range orderByTier(paths) {
		content, err := c.source.FileContent(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Per-file condition, not an error: one bad file must not
			// abort the batch.
			c.logger.Debug("documentation file skipped", "path", p, "error", err)
			continue
		}
		fetched[p] = content
	}

	c.logger.Info("documentation refreshed",
		"branch", branch,
		"listed", len(paths),
		"fetched", len(fetched))

	// Wholesale replacement, even if fewer files succeeded than listed.
	c.documents = fetched
	c.branch = branch
	c.fetchedAt = c.now()

	return c.documents, nil
}

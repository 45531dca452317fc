package depot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fueldepot/depot/internal/store"
)

// Browser answers API-reference page requests from a Store. Records are
// read-only here, so the records of recently viewed versions are cached.
type Browser struct {
	store *store.Store
	cache *expirable.LRU[int64, []*DocblockRecord]

	cacheSize int
	cacheTTL  time.Duration
}

// Option configures a Browser.
type Option func(*Browser)

// WithCache sets how many versions' records are kept and for how long.
// A size of zero disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(b *Browser) {
		b.cacheSize = size
		b.cacheTTL = ttl
	}
}

// New creates a Browser over s.
func New(s *store.Store, opts ...Option) *Browser {
	b := &Browser{
		store:     s,
		cacheSize: 16,
		cacheTTL:  5 * time.Minute,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cacheSize > 0 {
		b.cache = expirable.NewLRU[int64, []*DocblockRecord](b.cacheSize, nil, b.cacheTTL)
	}
	return b
}

// Store returns the underlying Store.
func (b *Browser) Store() *Store {
	return b.store
}

// Versions lists all versions in display order.
func (b *Browser) Versions(ctx context.Context) ([]*Version, error) {
	return b.store.Versions(ctx)
}

// Records returns the docblock records of a version ordered by package, then
// file.
func (b *Browser) Records(ctx context.Context, versionID int64) ([]*DocblockRecord, error) {
	if b.cache != nil {
		if records, ok := b.cache.Get(versionID); ok {
			return records, nil
		}
	}
	records, err := b.store.DocblocksByVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if b.cache != nil {
		b.cache.Add(versionID, records)
	}
	return records, nil
}

// Purge drops all cached records.
func (b *Browser) Purge() {
	if b.cache != nil {
		b.cache.Purge()
	}
}

// Request is one page request: the flat route parameters plus the visitor's
// session and cookies.
type Request struct {
	Params  []string
	Session SessionContext
	Cookies CookieContext
}

// Outcome says what the caller should do with a Page.
type Outcome int

const (
	OutcomeRender Outcome = iota
	OutcomeRedirect
	OutcomeNoVersions
)

// VersionOption is one entry of the version dropdown.
type VersionOption struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Stats summarizes a version for the introduction view.
type Stats struct {
	Files     int `json:"files"`
	Constants int `json:"constants"`
	Functions int `json:"functions"`
	Classes   int `json:"classes"`
}

// Symbols returns the total symbol count.
func (s Stats) Symbols() int {
	return s.Constants + s.Functions + s.Classes
}

// Page is everything the view layer needs for one request.
type Page struct {
	Outcome   Outcome
	Redirect  string
	Version   *Version
	Versions  []VersionOption
	Selection SelectionParams
	Index     *Index
	Trees     Trees
	Detail    *Detail
	Stats     Stats
}

// Browse runs one request: resolve the version, aggregate its records into
// trees and resolve the detail pane. Redirects and the no-versions state are
// returned as outcomes, not errors.
func (b *Browser) Browse(ctx context.Context, req Request) (*Page, error) {
	sel, err := ParseSelection(req.Params)
	if err != nil {
		return nil, err
	}

	versions, err := b.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	res := ResolveVersion(versions, sel.Version, req.Session)
	switch res.Kind {
	case Redirect:
		return &Page{Outcome: OutcomeRedirect, Redirect: res.Target, Selection: sel}, nil
	case Failed:
		if errors.Is(res.Err, ErrNoVersions) {
			return &Page{Outcome: OutcomeNoVersions, Selection: sel}, nil
		}
		return nil, fmt.Errorf("browse: %w", res.Err)
	}

	records, err := b.Records(ctx, res.Version.ID)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	idx, err := Aggregate(records, sel)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	detail, err := ResolveDetail(records, sel)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	var state NavigationState
	if req.Cookies != nil {
		state = ParseNavigationState(req.Cookies.Cookie(MenuStateCookie))
	}

	options := make([]VersionOption, len(versions))
	for i, v := range versions {
		options[i] = VersionOption{ID: v.ID, Label: v.Label(), Selected: v.ID == res.Version.ID}
	}

	return &Page{
		Outcome:   OutcomeRender,
		Version:   res.Version,
		Versions:  options,
		Selection: sel,
		Index:     idx,
		Trees:     BuildTrees(idx, sel.Version, state),
		Detail:    detail,
		Stats: Stats{
			Files:     len(records),
			Constants: idx.Constants.Len(),
			Functions: idx.Functions.Len(),
			Classes:   idx.Classes.Len(),
		},
	}, nil
}

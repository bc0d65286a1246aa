// Package processor composes the snapshot pipeline: parse, serialize,
// cache, query, flatten, paginate and format.
package processor

import (
	"errors"
	"fmt"
	"time"

	"github.com/jacoelho/ariaq/internal/aria"
	"github.com/jacoelho/ariaq/internal/format"
	"github.com/jacoelho/ariaq/internal/page"
	"github.com/jacoelho/ariaq/internal/query"
	"github.com/jacoelho/ariaq/internal/snapcache"
)

// ErrCacheMiss reports a stale or unknown cache key; the caller
// decides whether to re-fetch the snapshot or fail.
var ErrCacheMiss = errors.New("cache key not found or expired")

// ParseSnapshot extracts the snapshot region from possibly decorated
// text, parses it and serializes the tree to plain data. On structural
// errors it returns nil data plus one message per offending line.
func ParseSnapshot(text string) (any, []string) {
	nodes, parseErrors := aria.Parse(aria.ExtractSnapshot(text))

	if len(parseErrors) > 0 {
		messages := make([]string, 0, len(parseErrors))
		for _, e := range parseErrors {
			if e.Line > 0 {
				messages = append(messages, fmt.Sprintf("Line %d: %s", e.Line, e.Message))
			} else {
				messages = append(messages, e.Message)
			}
		}
		return nil, messages
	}

	if nodes == nil {
		return nil, nil
	}
	return aria.Serialize(nodes), nil
}

// Processor owns the query engine and the snapshot cache. The pure
// stages need no coordination; the cache is the only shared state.
type Processor struct {
	engine *query.Engine
	cache  *snapcache.Cache
}

// New returns a processor backed by the given cache.
func New(cache *snapcache.Cache) *Processor {
	return &Processor{
		engine: query.New(),
		cache:  cache,
	}
}

// Cache exposes the underlying snapshot cache.
func (p *Processor) Cache() *snapcache.Cache {
	return p.cache
}

// SnapshotRequest describes one pipeline invocation. Exactly one of
// Text or CacheKey supplies the snapshot: raw text is parsed and
// cached, a key reuses a previous parse.
type SnapshotRequest struct {
	Text      string
	CacheKey  string
	SourceURL string
	Query     string
	Flatten   bool
	Offset    int
	Limit     int
	Format    format.Format
	TTL       time.Duration
}

// SnapshotResult is the paged snapshot envelope.
type SnapshotResult struct {
	CacheKey string
	Total    int
	Offset   int
	Limit    int
	HasMore  bool
	Snapshot string
	Errors   []string
}

// Snapshot runs the pipeline. Parse and query failures surface in the
// result's Errors with an empty page; a Go error means the request
// itself could not be served (unknown cache key, encoding failure).
func (p *Processor) Snapshot(req SnapshotRequest) (*SnapshotResult, error) {
	data, key, messages, err := p.resolveData(req)
	if err != nil {
		return nil, err
	}

	result := &SnapshotResult{
		CacheKey: key,
		Offset:   req.Offset,
		Limit:    req.Limit,
		Errors:   messages,
	}
	if len(messages) > 0 {
		return result, nil
	}

	selected := data
	if req.Flatten {
		selected = aria.Flatten(data)
	}
	if req.Query != "" {
		queried, queryErr := p.engine.Query(normalize(selected), req.Query)
		if queryErr != nil {
			// The effective result of a failed query is an empty
			// sequence, reported alongside the message.
			queried = []any{}
			result.Errors = append(result.Errors, queryErr.Error())
		}
		selected = queried
	}

	paged := page.Apply(selected, req.Offset, req.Limit)
	result.Total = paged.Total
	result.HasMore = paged.HasMore

	rendered, err := format.Render(paged.Items, req.Format)
	if err != nil {
		return nil, err
	}
	result.Snapshot = rendered

	return result, nil
}

func (p *Processor) resolveData(req SnapshotRequest) (any, string, []string, error) {
	if req.CacheKey != "" {
		entry, ok := p.cache.Get(req.CacheKey)
		if !ok {
			return nil, "", nil, fmt.Errorf("%w: %s", ErrCacheMiss, req.CacheKey)
		}
		return entry.Snapshot, entry.Key, nil, nil
	}

	data, messages := ParseSnapshot(req.Text)
	if len(messages) > 0 || data == nil {
		return nil, "", messages, nil
	}

	key := p.cache.Create(req.SourceURL, data, req.TTL)
	return data, key, nil, nil
}

// normalize widens typed slices so the query engine sees plain data.
func normalize(data any) any {
	if flat, ok := data.([]map[string]any); ok {
		items := make([]any, 0, len(flat))
		for _, item := range flat {
			items = append(items, item)
		}
		return items
	}
	return data
}

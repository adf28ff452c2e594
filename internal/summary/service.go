// Package summary coordinates on-demand summarisation of entry content.
// It caches genuine summarizer results in the entry store exactly once and
// degrades to an unpersisted mechanical fallback on any collaborator fault.
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/repository"
)

// DefaultTimeout bounds a single external summarisation call.
const DefaultTimeout = 30 * time.Second

// Summarizer is the external text-condensation collaborator.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}

// Source describes where a returned summary came from.
type Source string

const (
	SourceCached   Source = "cached"
	SourceFresh    Source = "fresh"
	SourceFallback Source = "fallback"
)

// Context is the full detail view of an entry, with a summary guaranteed
// present.
type Context struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Source    Source   `json:"summary_source"`
	CreatedAt string   `json:"created_at"`
	Tags      []string `json:"tags,omitempty"`
	Content   string   `json:"content,omitempty"`
}

// Stats counts summarisation outcomes. Owned by the service rather than
// package-level state so tests can read and reset it.
type Stats struct {
	Attempts  int64 `json:"attempts"`
	Fresh     int64 `json:"fresh"`
	Fallbacks int64 `json:"fallbacks"`
	CacheHits int64 `json:"cache_hits"`
}

// EntryStore is the slice of the entity store the coordinator needs.
type EntryStore interface {
	Get(ctx context.Context, projectID, id string) (*entry.Entry, error)
	UpdateSummary(ctx context.Context, id, summary string) error
}

// Service is the summarisation cache coordinator.
type Service struct {
	entries    EntryStore
	summarizer Summarizer
	timeout    time.Duration
	logger     *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewService creates a new summary service. A zero timeout falls back to
// DefaultTimeout.
func NewService(entries EntryStore, summarizer Summarizer, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		entries:    entries,
		summarizer: summarizer,
		timeout:    timeout,
		logger:     logger,
	}
}

// GetContext returns the full context for an entry, computing and caching
// the summary on first read. A cached summary short-circuits without any
// external call. A fresh result is persisted; a fallback never is, so the
// next read retries the collaborator.
func (s *Service) GetContext(ctx context.Context, projectID, id string, includeContent bool) (*Context, error) {
	ent, err := s.entries.Get(ctx, projectID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entry.ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry %q: %w", id, err)
	}

	var text string
	var source Source
	switch {
	case ent.Summary != nil:
		text = *ent.Summary
		source = SourceCached
		s.record(func(st *Stats) { st.CacheHits++ })
	default:
		text, source = s.summarize(ctx, ent)
	}

	result := &Context{
		ID:        ent.ID,
		ProjectID: ent.ProjectID,
		Title:     ent.Title,
		Summary:   text,
		Source:    source,
		CreatedAt: ent.CreatedAt,
		Tags:      ent.Tags,
	}
	if includeContent {
		result.Content = ent.Content
	}
	return result, nil
}

// summarize runs the external call under the hard timeout and persists only
// genuine results. Collaborator faults are absorbed here; the caller always
// gets some summary back.
func (s *Service) summarize(ctx context.Context, ent *entry.Entry) (string, Source) {
	s.record(func(st *Stats) { st.Attempts++ })

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.summarizer.Summarize(callCtx, ent.Title, ent.Content)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil && s.logger != nil {
			s.logger.Warn("summarizer call failed, using fallback",
				"entry_id", ent.ID, "error", err)
		}
		s.record(func(st *Stats) { st.Fallbacks++ })
		return fallbackSummary(ent.Content), SourceFallback
	}

	s.record(func(st *Stats) { st.Fresh++ })

	// Caching is best effort: a failed write costs a recomputation later,
	// not this response.
	if err := s.entries.UpdateSummary(ctx, ent.ID, text); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to cache summary", "entry_id", ent.ID, "error", err)
		}
	}

	return text, SourceFresh
}

// Stats returns a snapshot of the summarisation counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ResetStats zeroes the counters.
func (s *Service) ResetStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{}
}

func (s *Service) record(fn func(*Stats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.stats)
}

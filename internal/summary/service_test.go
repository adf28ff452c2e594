package summary_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sabren/worklog/internal/domain/entry"
	"github.com/sabren/worklog/internal/repository"
	"github.com/sabren/worklog/internal/repository/mocks"
	"github.com/sabren/worklog/internal/summary"
)

type summarizeFunc func(ctx context.Context, title, content string) (string, error)

func (f summarizeFunc) Summarize(ctx context.Context, title, content string) (string, error) {
	return f(ctx, title, content)
}

func storedEntry(summaryText *string) *entry.Entry {
	return &entry.Entry{
		ID:        "aaaabbbbcccc",
		ProjectID: "demo",
		Title:     "Fix login bug",
		Content:   "Patched session timeout in the auth middleware",
		Summary:   summaryText,
		CreatedAt: "2024-03-01T10:00:00.000Z",
		Tags:      []string{"auth"},
	}
}

func TestGetContext_FreshIsPersistedOnce(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()

	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(nil), nil).Once()
	entries.On("UpdateSummary", ctx, "aaaabbbbcccc", "condensed").Return(nil).Once()

	calls := 0
	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		calls++
		return "condensed", nil
	}), 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, "condensed", res.Summary)
	require.Equal(t, summary.SourceFresh, res.Source)
	require.Empty(t, res.Content, "content withheld unless requested")
	require.Equal(t, 1, calls)

	// Once cached, reads must not reach the summarizer again.
	cached := "condensed"
	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(&cached), nil).Once()

	res, err = svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, summary.SourceCached, res.Source)
	require.Equal(t, 1, calls)

	entries.AssertExpectations(t)

	stats := svc.Stats()
	require.EqualValues(t, 1, stats.Attempts)
	require.EqualValues(t, 1, stats.Fresh)
	require.EqualValues(t, 1, stats.CacheHits)
	require.EqualValues(t, 0, stats.Fallbacks)
}

func TestGetContext_FallbackNeverPersisted(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()

	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(nil), nil)

	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("upstream unavailable")
	}), 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, summary.SourceFallback, res.Source)
	require.Equal(t, storedEntry(nil).Content, res.Summary, "short content passes through untruncated")

	// A second read retries the summarizer instead of reading a cache.
	_, err = svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)

	entries.AssertNotCalled(t, "UpdateSummary", mock.Anything, mock.Anything, mock.Anything)

	stats := svc.Stats()
	require.EqualValues(t, 2, stats.Attempts)
	require.EqualValues(t, 2, stats.Fallbacks)
	require.EqualValues(t, 0, stats.CacheHits)
}

func TestGetContext_FallbackTruncatesLongContent(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()

	ent := storedEntry(nil)
	ent.Content = strings.Repeat("a", 500)
	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(ent, nil)

	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("boom")
	}), 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", summary.FallbackLimit)+summary.FallbackEllipsis, res.Summary)
}

func TestGetContext_BlankResultIsAFault(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()
	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(nil), nil)

	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		return "   \n ", nil
	}), 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, summary.SourceFallback, res.Source)
	entries.AssertNotCalled(t, "UpdateSummary", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetContext_PersistFailureStillAnswers(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()

	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(nil), nil)
	entries.On("UpdateSummary", ctx, "aaaabbbbcccc", "condensed").Return(errors.New("disk full"))

	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		return "condensed", nil
	}), 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.Equal(t, summary.SourceFresh, res.Source)
	require.Equal(t, "condensed", res.Summary)
}

func TestGetContext_NotFound(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()
	entries.On("Get", ctx, "demo", "missing00000").Return(nil, repository.ErrNotFound)

	svc := summary.NewService(entries, summarizeFunc(func(_ context.Context, _, _ string) (string, error) {
		return "unused", nil
	}), 0, nil)

	_, err := svc.GetContext(ctx, "demo", "missing00000", false)
	require.ErrorIs(t, err, entry.ErrEntryNotFound)
}

func TestGetContext_IncludeContent(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()
	cached := "condensed"
	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(&cached), nil)

	svc := summary.NewService(entries, nil, 0, nil)

	res, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", true)
	require.NoError(t, err)
	require.Equal(t, storedEntry(nil).Content, res.Content)
}

func TestResetStats(t *testing.T) {
	entries := &mocks.EntryRepository{}
	ctx := context.Background()
	cached := "condensed"
	entries.On("Get", ctx, "demo", "aaaabbbbcccc").Return(storedEntry(&cached), nil)

	svc := summary.NewService(entries, nil, 0, nil)
	_, err := svc.GetContext(ctx, "demo", "aaaabbbbcccc", false)
	require.NoError(t, err)
	require.EqualValues(t, 1, svc.Stats().CacheHits)

	svc.ResetStats()
	require.Equal(t, summary.Stats{}, svc.Stats())
}

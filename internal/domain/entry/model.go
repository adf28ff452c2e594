package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDLength is the exact length of every entry identifier.
const IDLength = 12

// TimeLayout is the storage format for timestamps. Always UTC with a fixed
// fractional width and a literal Z, so stored values sort correctly as text.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Entry is a single unit of recorded agent work. All fields except Summary
// are fixed at creation time.
type Entry struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Summary   *string  `json:"summary,omitempty"`
	CreatedAt string   `json:"created_at"`
	Tags      []string `json:"tags,omitempty"`
	AgentID   *string  `json:"agent_id,omitempty"`
}

// Ref is the lightweight projection returned by search. Content and summary
// are deliberately omitted; full detail requires a separate fetch.
type Ref struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Title     string   `json:"title"`
	CreatedAt string   `json:"created_at"`
	Tags      []string `json:"tags,omitempty"`
}

// NewID generates a fresh entry identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:IDLength]
}

// FormatTime renders a timestamp in the storage layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Now returns the current time in the storage layout.
func Now() string {
	return FormatTime(time.Now())
}

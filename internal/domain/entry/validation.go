package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/sabren/worklog/internal/domain/project"
)

// Input bounds. Validation runs before any storage mutation is attempted.
const (
	MaxTitleLen   = 200
	MaxContentLen = 50000
	MaxTags       = 20
	MaxTagLen     = 64
	MaxAgentIDLen = 128

	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ValidateCreateInput validates fields required to create an entry.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return invalidField("project_id", "required")
	}
	if len(req.ProjectID) > project.MaxIDLen {
		return invalidField("project_id", fmt.Sprintf("exceeds %d characters", project.MaxIDLen))
	}
	if strings.TrimSpace(req.Title) == "" {
		return invalidField("title", "required")
	}
	if len(req.Title) > MaxTitleLen {
		return invalidField("title", fmt.Sprintf("exceeds %d characters", MaxTitleLen))
	}
	if strings.TrimSpace(req.Content) == "" {
		return invalidField("content", "required")
	}
	if len(req.Content) > MaxContentLen {
		return invalidField("content", fmt.Sprintf("exceeds %d characters", MaxContentLen))
	}
	if len(req.Tags) > MaxTags {
		return invalidField("tags", fmt.Sprintf("exceeds %d tags", MaxTags))
	}
	for _, tag := range req.Tags {
		if strings.TrimSpace(tag) == "" {
			return invalidField("tags", "empty tag")
		}
		if len(tag) > MaxTagLen {
			return invalidField("tags", fmt.Sprintf("tag %q exceeds %d characters", tag, MaxTagLen))
		}
	}
	if req.AgentID != nil && len(*req.AgentID) > MaxAgentIDLen {
		return invalidField("agent_id", fmt.Sprintf("exceeds %d characters", MaxAgentIDLen))
	}
	if req.ID != "" && len(req.ID) != IDLength {
		return invalidField("id", fmt.Sprintf("must be exactly %d characters", IDLength))
	}
	return nil
}

// NormalizeSearchInput validates a search request and normalizes its date
// bounds and limit in place.
func NormalizeSearchInput(opts *SearchOptions) error {
	if strings.TrimSpace(opts.ProjectID) == "" {
		return invalidField("project_id", "required")
	}
	if len(opts.Tags) > MaxTags {
		return invalidField("tags", fmt.Sprintf("exceeds %d tags", MaxTags))
	}

	if opts.StartDate != "" {
		start, err := normalizeDate(opts.StartDate, false)
		if err != nil {
			return invalidField("start_date", err.Error())
		}
		opts.StartDate = start
	}
	if opts.EndDate != "" {
		end, err := normalizeDate(opts.EndDate, true)
		if err != nil {
			return invalidField("end_date", err.Error())
		}
		opts.EndDate = end
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Limit > MaxSearchLimit {
		return invalidField("limit", fmt.Sprintf("exceeds maximum of %d", MaxSearchLimit))
	}
	return nil
}

// normalizeDate converts a caller-supplied bound to the storage layout so
// the comparison stays lexical. Date-only inputs expand to the start or end
// of that day.
func normalizeDate(value string, endOfDay bool) (string, error) {
	if day, err := time.Parse("2006-01-02", value); err == nil {
		if endOfDay {
			day = day.Add(24*time.Hour - time.Millisecond)
		}
		return FormatTime(day), nil
	}
	for _, layout := range []string{TimeLayout, time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return FormatTime(ts), nil
		}
	}
	return "", fmt.Errorf("malformed date %q, want YYYY-MM-DD or RFC 3339", value)
}

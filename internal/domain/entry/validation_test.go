package entry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validCreate() CreateRequest {
	return CreateRequest{
		ProjectID: "demo",
		Title:     "Fix login bug",
		Content:   "Patched session timeout",
	}
}

func TestValidateCreateInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"valid", func(r *CreateRequest) {}, ""},
		{"missing project", func(r *CreateRequest) { r.ProjectID = "  " }, "project_id"},
		{"project too long", func(r *CreateRequest) { r.ProjectID = strings.Repeat("p", 129) }, "project_id"},
		{"missing title", func(r *CreateRequest) { r.Title = "" }, "title"},
		{"title too long", func(r *CreateRequest) { r.Title = strings.Repeat("t", MaxTitleLen+1) }, "title"},
		{"missing content", func(r *CreateRequest) { r.Content = " " }, "content"},
		{"content too long", func(r *CreateRequest) { r.Content = strings.Repeat("c", MaxContentLen+1) }, "content"},
		{"too many tags", func(r *CreateRequest) { r.Tags = make([]string, MaxTags+1) }, "tags"},
		{"empty tag", func(r *CreateRequest) { r.Tags = []string{"auth", " "} }, "tags"},
		{"tag too long", func(r *CreateRequest) { r.Tags = []string{strings.Repeat("x", MaxTagLen+1)} }, "tags"},
		{"short id", func(r *CreateRequest) { r.ID = "abc" }, "id"},
		{"long id", func(r *CreateRequest) { r.ID = strings.Repeat("a", IDLength+1) }, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)
			err := ValidateCreateInput(req)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNormalizeSearchInput_Dates(t *testing.T) {
	opts := SearchOptions{
		ProjectID: "demo",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-02",
	}
	require.NoError(t, NormalizeSearchInput(&opts))
	require.Equal(t, "2024-03-01T00:00:00.000Z", opts.StartDate)
	require.Equal(t, "2024-03-02T23:59:59.999Z", opts.EndDate, "date-only end bound covers the whole day")

	opts = SearchOptions{ProjectID: "demo", StartDate: "2024-03-01T12:30:00Z"}
	require.NoError(t, NormalizeSearchInput(&opts))
	require.Equal(t, "2024-03-01T12:30:00.000Z", opts.StartDate)

	opts = SearchOptions{ProjectID: "demo", StartDate: "yesterday"}
	err := NormalizeSearchInput(&opts)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewID(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewID()
		require.Len(t, id, IDLength)
		require.NotContains(t, seen, id)
		seen[id] = struct{}{}
	}
}

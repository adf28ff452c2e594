package entry

// SearchOptions provides filters for searching entries within one project.
// All supplied filters combine conjunctively.
type SearchOptions struct {
	ProjectID string
	Query     string
	Tags      []string
	StartDate string
	EndDate   string
	Limit     int
}

// SearchResult is a page of matches plus the total count computed before the
// limit was applied.
type SearchResult struct {
	Results []Ref `json:"results"`
	Total   int   `json:"total"`
}

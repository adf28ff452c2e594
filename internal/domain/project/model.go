package project

// Project groups log entries under a caller-supplied identifier,
// conventionally a repository or workspace name.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EntryCount int    `json:"entry_count"`
	CreatedAt  string `json:"created_at"`
}

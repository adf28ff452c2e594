package summary

// FallbackLimit is the fixed truncation bound for mechanically derived
// summaries. The ellipsis marker is appended only when content was actually
// truncated.
const (
	FallbackLimit    = 200
	FallbackEllipsis = "..."
)

// fallbackSummary derives a deterministic summary from content when the
// external summarizer is unavailable. Fallbacks are never persisted.
func fallbackSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= FallbackLimit {
		return content
	}
	return string(runes[:FallbackLimit]) + FallbackEllipsis
}

// Package redact strips obvious secrets and PII from free text before it
// reaches storage. Heuristic by design; it is applied at the tool boundary,
// not inside the storage core.
package redact

import "regexp"

const placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Bearer tokens and Authorization header values
	regexp.MustCompile(`(?i)bearer\s+[a-z0-9._\-]{16,}`),
	// Common API key shapes (sk-..., ghp_..., AKIA..., xox...)
	regexp.MustCompile(`\bsk-[A-Za-z0-9\-_]{16,}\b`),
	regexp.MustCompile(`\bghp_[A-Za-z0-9]{20,}\b`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9\-]{10,}\b`),
	// key=value / key: value assignments for secret-looking keys
	regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|password|passwd)\s*[=:]\s*\S+`),
	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
}

// Text replaces every secret-looking span with a placeholder.
func Text(s string) string {
	for _, pattern := range patterns {
		s = pattern.ReplaceAllString(s, placeholder)
	}
	return s
}

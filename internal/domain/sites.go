package domain

import "strings"

// NormalizeSites trims entries, drops blanks and duplicates, and keeps the
// first-seen order.
func NormalizeSites(sites []string) []string {
	result := make([]string, 0, len(sites))
	seen := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		trimmed := strings.TrimSpace(site)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

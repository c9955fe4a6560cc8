package utils

import "strings"

// ParseCSV splits a comma-separated list into trimmed, non-empty values.
// Blank input yields nil.
func ParseCSV(s string) []string {
	return splitList(s, strings.TrimSpace)
}

// ParseCSVLower is ParseCSV with every value lowercased, for seller
// allow-lists that are matched case-insensitively.
func ParseCSVLower(s string) []string {
	return splitList(s, func(v string) string {
		return strings.ToLower(strings.TrimSpace(v))
	})
}

func splitList(s string, normalize func(string) string) []string {
	var values []string
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' }) {
		if v := normalize(field); v != "" {
			values = append(values, v)
		}
	}
	return values
}

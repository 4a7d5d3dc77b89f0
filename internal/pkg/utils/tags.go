package utils

import (
	"strings"
	"unicode/utf8"
)

// MaxTagLength bounds a single tag name in runes.
const MaxTagLength = 40

// ParseTagList splits a user-supplied list ("Sunset, beach;  NIGHT ,beach")
// into unique lower-case names in first-seen order. Empty entries are dropped,
// over-long entries are returned in the second slice.
func ParseTagList(s string) (tags []string, invalid []string) {
	tags = []string{}
	seen := make(map[string]bool)

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, f := range fields {
		name := strings.ToLower(strings.Join(strings.Fields(f), " "))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if utf8.RuneCountInString(name) > MaxTagLength {
			invalid = append(invalid, name)
			continue
		}
		tags = append(tags, name)
	}
	return tags, invalid
}

// JoinTagList is the inverse of ParseTagList for display in edit forms.
func JoinTagList(tags []string) string {
	return strings.Join(tags, ", ")
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", " , ;; ,", []string{}},
		{"trims and lowercases", " Sunset ,Beach", []string{"sunset", "beach"}},
		{"dedupes case-insensitively", "night, NIGHT, Night", []string{"night"}},
		{"semicolons and newlines", "a;b\nc", []string{"a", "b", "c"}},
		{"collapses inner whitespace", "deep   space", []string{"deep space"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, invalid := ParseTagList(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Empty(t, invalid)
		})
	}
}

func TestParseTagList_TooLong(t *testing.T) {
	long := strings.Repeat("x", MaxTagLength+1)

	got, invalid := ParseTagList("ok," + long)

	assert.Equal(t, []string{"ok"}, got)
	assert.Equal(t, []string{long}, invalid)
}

func TestJoinTagList(t *testing.T) {
	assert.Equal(t, "a, b", JoinTagList([]string{"a", "b"}))
	assert.Equal(t, "", JoinTagList(nil))
}

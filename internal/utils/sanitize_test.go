package utils

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		max  int
		want string
	}{
		{"nil", nil, 0, ""},
		{"false", false, 0, ""},
		{"zero", 0, 0, ""},
		{"empty", "", 0, ""},
		{"trims", "  Main Library  ", 0, "Main Library"},
		{"number", 42, 0, "42"},
		{"float", 12.5, 0, "12.5"},
		{"true", true, 0, "true"},
		{"truncates", "abcdefgh", 3, "abc"},
		{"truncates runes", "ééééé", 2, "éé"},
		{"unconvertible", map[string]int{"a": 1}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in, tt.max); got != tt.want {
				t.Errorf("Sanitize(%v, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeDefaultMax(t *testing.T) {
	got := Sanitize(strings.Repeat("x", 200), 0)
	if len(got) != DefaultMaxLen {
		t.Errorf("len = %d, want %d", len(got), DefaultMaxLen)
	}
}

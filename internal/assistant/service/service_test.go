package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateTitle(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short untouched", "Stock question", 60, "Stock question"},
		{"exact length untouched", strings.Repeat("a", 60), 60, strings.Repeat("a", 60)},
		{"long ascii cut", strings.Repeat("a", 61), 60, strings.Repeat("a", 60)},
		{"multibyte cut on rune boundary", strings.Repeat("é", 40), 30, strings.Repeat("é", 30)},
	}
	for _, tc := range cases {
		got := truncateTitle(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("%s: truncateTitle = %q, want %q", tc.name, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("%s: truncated title is not valid UTF-8", tc.name)
		}
	}
}

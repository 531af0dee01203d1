package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 5, "abcd…"},
		{"zero width", "abc", 0, ""},
		{"wide runes", "日本語テスト", 7, "日本語…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateWidth(tt.input, tt.maxWidth, "…"); got != tt.want {
				t.Errorf("truncateWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestPadRightUsesCellWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"ascii", "abc", 10},
		{"wide runes", "日本語", 10},
		{"mixed", "a日b本c", 12},
		{"already full", "abcdefghij", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.width)
			if w := runewidth.StringWidth(got); w != tt.width {
				t.Errorf("padRight(%q, %d) renders %d cells wide, want %d",
					tt.input, tt.width, w, tt.width)
			}
		})
	}
}

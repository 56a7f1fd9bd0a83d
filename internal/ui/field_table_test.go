package ui

import (
	"strings"
	"testing"
)

func TestRenderFieldTable(t *testing.T) {
	display := NewDisplayContextWithWidth(80)
	out := RenderFieldTable(display, []FieldRow{
		{Label: "Title", Type: "title", Value: "Hello"},
		{Label: "Status", Type: "status", Value: "open"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	for i, want := range []string{"Hello", "open"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[1], "Status") || !strings.Contains(lines[1], "status") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRenderFieldTableEmpty(t *testing.T) {
	if got := RenderFieldTable(NewDisplayContextWithWidth(80), nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"hello world again", 12, "hello wor..."},
		{"alpha beta gamma delta", 16, "alpha beta..."},
		{"abcdefghij", 3, "abc"},
		{"abcdefghij", 8, "abcde..."},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

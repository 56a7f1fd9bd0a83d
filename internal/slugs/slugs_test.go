package slugs

import "testing"

func TestNoteID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "hello"},
		{"My Awesome Project", "my-awesome-project"},
		{"  Padded Title  ", "padded-title"},
		{"Special: Characters!", "special-characters"},
		{"Café Crème", "cafe-creme"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NoteID(tt.in); got != tt.want {
				t.Fatalf("NoteID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnchorSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Weekly Standup", "weekly-standup"},
		{"A:B", "a-b"},
		{"A__B", "a-b"},
		{"A - B", "a-b"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"!!!", ""},
		{"Привет мир", "привет-мир"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := AnchorSlug(tt.in); got != tt.want {
				t.Fatalf("AnchorSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

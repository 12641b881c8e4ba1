package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"passthrough", "video_001.mp4", "video_001.mp4"},
		{"slashes become dashes", "a/b\\c", "a-b-c"},
		{"unsafe removed", `what?"<>|`, "what"},
		{"trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFileName(tc.input); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeEscapedNewlines(t *testing.T) {
	got := NormalizeEscapedNewlines(`first paragraph\n\nsecond paragraph`)
	want := "first paragraph\n\nsecond paragraph"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	if got := CollapseWhitespace("  a \t b\n c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestCamelSummary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		{"basic", "My friend's AMAZING secret!", 3, "myFriendsAmazing"},
		{"fewer words than max", "hello world", 5, "helloWorld"},
		{"punctuation only words skipped", "wait... what !!", 4, "waitWhat"},
		{"empty", "", 4, ""},
		{"zero max", "anything", 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CamelSummary(tc.input, tc.maxWords); got != tc.want {
				t.Fatalf("CamelSummary(%q, %d) = %q, want %q", tc.input, tc.maxWords, got, tc.want)
			}
		})
	}
}

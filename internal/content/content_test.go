package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

func TestLoadStories(t *testing.T) {
	path := writeTable(t, "stories.csv",
		"id,title,story_text,background_theme,music_mood,show_title\n"+
			`s1,My Title,"First line.\nSecond line.",nature,calm,true`+"\n"+
			`s2,,No title here,city,upbeat,`+"\n")

	records, err := LoadStories(path)
	if err != nil {
		t.Fatalf("LoadStories: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != "s1" || first.Title != "My Title" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Text != "First line.\nSecond line." {
		t.Fatalf("escaped newline not normalized: %q", first.Text)
	}
	if !first.ShowTitle.Valid || !first.ShowTitle.Value {
		t.Fatalf("show_title should decode to explicit true: %+v", first.ShowTitle)
	}
	if first.BackgroundTheme != "nature" || first.MusicMood != "calm" {
		t.Fatalf("theme/mood not read: %+v", first)
	}

	second := records[1]
	if second.ShowTitle.Valid {
		t.Fatalf("empty show_title should stay unset: %+v", second.ShowTitle)
	}
}

func TestLoadStoriesSkipsEmptyText(t *testing.T) {
	path := writeTable(t, "stories.csv",
		"id,story_text\ns1,\ns2,Actual story text\n")

	records, err := LoadStories(path)
	if err != nil {
		t.Fatalf("LoadStories: %v", err)
	}
	if len(records) != 1 || records[0].ID != "s2" {
		t.Fatalf("expected only s2, got %+v", records)
	}
}

func TestLoadStoriesDefaultsMissingID(t *testing.T) {
	path := writeTable(t, "stories.csv", "story_text\nA story with no id column\n")

	records, err := LoadStories(path)
	if err != nil {
		t.Fatalf("LoadStories: %v", err)
	}
	if len(records) != 1 || records[0].ID != "1" {
		t.Fatalf("expected ordinal id, got %+v", records)
	}
}

func TestLoadStoriesRequiresTextColumn(t *testing.T) {
	path := writeTable(t, "stories.csv", "id,title\ns1,Title Only\n")
	if _, err := LoadStories(path); err == nil {
		t.Fatal("expected error for missing story_text column")
	}
}

func TestLoadStoriesMissingFile(t *testing.T) {
	if _, err := LoadStories(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadHooks(t *testing.T) {
	path := writeTable(t, "hooks.csv",
		"id,text,tts\nh1,You won't believe this,You will not believe this\nh2,Plain hook,\n")

	records, err := LoadHooks(path)
	if err != nil {
		t.Fatalf("LoadHooks: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].TTS != "You will not believe this" {
		t.Fatalf("tts column not read: %+v", records[0])
	}
	if records[1].TTS != "" {
		t.Fatalf("expected empty tts: %+v", records[1])
	}
}

func TestParseOptionalBool(t *testing.T) {
	tests := []struct {
		input string
		want  OptionalBool
	}{
		{"true", OptionalBool{Value: true, Valid: true}},
		{"YES", OptionalBool{Value: true, Valid: true}},
		{"1", OptionalBool{Value: true, Valid: true}},
		{"false", OptionalBool{Value: false, Valid: true}},
		{"no", OptionalBool{Value: false, Valid: true}},
		{"whatever", OptionalBool{Value: false, Valid: true}},
		{"", OptionalBool{}},
		{"   ", OptionalBool{}},
	}
	for _, tc := range tests {
		if got := ParseOptionalBool(tc.input); got != tc.want {
			t.Fatalf("ParseOptionalBool(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestOptionalBoolOr(t *testing.T) {
	if got := (OptionalBool{}).Or(true); got != true {
		t.Fatal("unset flag should use fallback")
	}
	if got := (OptionalBool{Value: false, Valid: true}).Or(true); got != false {
		t.Fatal("explicit false should beat fallback")
	}
}

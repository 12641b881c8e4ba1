package render

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"reelsmith/internal/config"
	"reelsmith/internal/storyboard"
)

func testBoard() *storyboard.Storyboard {
	return &storyboard.Storyboard{
		Cues: []storyboard.Cue{
			{Index: 1, Text: "First segment.", Start: 0, Duration: 3, X: 120, Y: 252, FontSize: 50},
			{Index: 2, Text: "Second segment.", Start: 3, Duration: 4.5, X: 120, Y: 252, FontSize: 50},
		},
		Total: 7.5,
	}
}

func TestASSDocumentDialogueLines(t *testing.T) {
	cfg := config.Default()
	doc := assDocument(testBoard(), &cfg, 7.5)

	if !strings.Contains(doc, "PlayResX: 1080") || !strings.Contains(doc, "PlayResY: 1920") {
		t.Error("expected frame size in script info")
	}
	if !strings.Contains(doc, `{\an7\pos(120,252)\fs50\fad(200,200)}First segment.`) {
		t.Errorf("missing positioned first cue:\n%s", doc)
	}
	if !strings.Contains(doc, "Dialogue: 0,0:00:00.00,0:00:03.00,Caption") {
		t.Errorf("missing first cue timing:\n%s", doc)
	}
	if !strings.Contains(doc, "Dialogue: 0,0:00:03.00,0:00:07.50,Caption") {
		t.Errorf("missing second cue timing:\n%s", doc)
	}
}

func TestASSDocumentTitleCue(t *testing.T) {
	cfg := config.Default()
	board := testBoard()
	board.Title = &storyboard.Cue{Text: "My Title", Start: 0, Duration: 3, X: 200, Y: 400, FontSize: 80}

	doc := assDocument(board, &cfg, 7.5)
	if !strings.Contains(doc, `{\an7\pos(200,400)\fs80\fad(200,200)}My Title`) {
		t.Errorf("missing title cue:\n%s", doc)
	}
}

func TestASSDocumentFullClipCue(t *testing.T) {
	cfg := config.Default()
	board := &storyboard.Storyboard{
		Cues: []storyboard.Cue{{Index: 1, Text: "Hook text", Start: 0, Duration: 0, X: 120, Y: 800, FontSize: 80}},
	}

	// Duration zero resolves to the clip length.
	doc := assDocument(board, &cfg, 6.25)
	if !strings.Contains(doc, "Dialogue: 0,0:00:00.00,0:00:06.25,Caption") {
		t.Errorf("full-clip cue not resolved:\n%s", doc)
	}
}

func TestASSDocumentEscapesText(t *testing.T) {
	cfg := config.Default()
	board := &storyboard.Storyboard{
		Cues: []storyboard.Cue{{Index: 1, Text: "braces {here}\nsecond line", Start: 0, Duration: 2}},
	}

	doc := assDocument(board, &cfg, 2)
	if !strings.Contains(doc, `braces (here)\Nsecond line`) {
		t.Errorf("text not escaped:\n%s", doc)
	}
}

func TestASSTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{3.5, "0:00:03.50"},
		{61.25, "0:01:01.25"},
		{3600, "1:00:00.00"},
		{-1, "0:00:00.00"},
	}
	for _, tt := range tests {
		if got := assTimestamp(tt.seconds); got != tt.want {
			t.Errorf("assTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestASSColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"white", "&H00FFFFFF"},
		{"Yellow", "&H0000FFFF"},
		{"#FF8000", "&H000080FF"},
		{"&H00ABCDEF", "&H00ABCDEF"},
		{"", "&H00FFFFFF"},
		{"not-a-color", "&H00FFFFFF"},
	}
	for _, tt := range tests {
		if got := assColor(tt.in); got != tt.want {
			t.Errorf("assColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Arial"},
		{"/fonts/Montserrat-Bold.ttf", "Montserrat Bold"},
		{"open_sans.otf", "open sans"},
	}
	for _, tt := range tests {
		if got := fontFamily(tt.in); got != tt.want {
			t.Errorf("fontFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func capturingRenderer(t *testing.T) (*Renderer, *[]string) {
	t.Helper()
	cfg := config.Default()
	r := New(&cfg, nil)

	var args []string
	r.run = func(_ context.Context, stream *ffmpeg.Stream) error {
		args = stream.GetArgs()
		return nil
	}
	r.probe = func(string) (float64, error) { return 5, nil }
	return r, &args
}

func joined(args []string) string {
	return strings.Join(args, " ")
}

func TestRenderStoryGraph(t *testing.T) {
	r, args := capturingRenderer(t)
	out := filepath.Join(t.TempDir(), "story.mp4")

	err := r.RenderStory(context.Background(), StoryJob{
		Board:      testBoard(),
		Background: "/assets/bg/clip.mp4",
		Music:      "/assets/music/track.mp3",
		Output:     out,
	})
	if err != nil {
		t.Fatalf("RenderStory() error = %v", err)
	}

	graph := joined(*args)
	for _, want := range []string{
		"drawbox",
		"black@0.40",
		"ass=",
		"scale=1080:1920",
		"trim=duration=7.500",
		"volume=0.30",
		"libx264",
	} {
		if !strings.Contains(graph, want) {
			t.Errorf("graph missing %q:\n%s", want, graph)
		}
	}
}

func TestRenderStorySilentWhenNoAudio(t *testing.T) {
	r, args := capturingRenderer(t)
	out := filepath.Join(t.TempDir(), "story.mp4")

	err := r.RenderStory(context.Background(), StoryJob{
		Board:      testBoard(),
		Background: "/assets/bg/clip.mp4",
		Output:     out,
	})
	if err != nil {
		t.Fatalf("RenderStory() error = %v", err)
	}

	graph := joined(*args)
	if !strings.Contains(graph, "-an") {
		t.Errorf("expected -an for silent output:\n%s", graph)
	}
	if strings.Contains(graph, "amix") {
		t.Errorf("unexpected audio mix:\n%s", graph)
	}
}

func TestRenderStoryMixesNarrationAndMusic(t *testing.T) {
	r, args := capturingRenderer(t)
	out := filepath.Join(t.TempDir(), "story.mp4")

	err := r.RenderStory(context.Background(), StoryJob{
		Board:      testBoard(),
		Background: "/assets/bg/clip.mp4",
		Music:      "/assets/music/track.mp3",
		Narration:  "/staging/narration.mp3",
		Output:     out,
	})
	if err != nil {
		t.Fatalf("RenderStory() error = %v", err)
	}

	graph := joined(*args)
	if !strings.Contains(graph, "amix=duration=longest:inputs=2") &&
		!strings.Contains(graph, "amix=inputs=2:duration=longest") {
		t.Errorf("expected two-input amix:\n%s", graph)
	}
}

func TestRenderStoryRejectsEmptyBoard(t *testing.T) {
	r, _ := capturingRenderer(t)

	err := r.RenderStory(context.Background(), StoryJob{
		Board:  &storyboard.Storyboard{},
		Output: filepath.Join(t.TempDir(), "story.mp4"),
	})
	if err == nil {
		t.Fatal("expected error for empty storyboard")
	}
}

func TestRenderReelGraph(t *testing.T) {
	r, args := capturingRenderer(t)
	out := filepath.Join(t.TempDir(), "reel.mp4")

	board := &storyboard.Storyboard{
		Cues: []storyboard.Cue{{Index: 1, Text: "Hook", Start: 0, Duration: 0, X: 120, Y: 800, FontSize: 80}},
	}
	err := r.RenderReel(context.Background(), ReelJob{
		Board:  board,
		Hook:   "/assets/hooks/a.mp4",
		CTA:    "/assets/cta/b.mp4",
		Output: out,
	})
	if err != nil {
		t.Fatalf("RenderReel() error = %v", err)
	}

	graph := joined(*args)
	for _, want := range []string{"concat", "ass=", "scale=1080:1920"} {
		if !strings.Contains(graph, want) {
			t.Errorf("graph missing %q:\n%s", want, graph)
		}
	}
	// Both clips probed at 5s each.
	if !strings.Contains(graph, "10.000") {
		t.Errorf("expected 10s output duration:\n%s", graph)
	}
}

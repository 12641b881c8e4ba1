package planner

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"reelsmith/internal/assets"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/storyboard"
	"reelsmith/internal/testsupport"
)

const longParagraph = "This opening paragraph carries enough words to stand on its own as a " +
	"caption card, well past the coalescing threshold the segmenter applies to short text."

func newPlanner(t *testing.T) (*Planner, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.BackgroundsDir, "generic.mp4"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.HookVideosDir, "hook.mp4"), []byte("x"))
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.CTAVideosDir, "cta.mp4"), []byte("x"))

	p, err := New(cfg, assets.NewSelector(cfg), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p, testsupport.BaseDir(cfg)
}

func TestExecuteStoryItem(t *testing.T) {
	p, _ := newPlanner(t)

	item := &queue.Item{
		ID:        1,
		Kind:      queue.KindStory,
		ContentID: "story-1",
		Title:     "The Secret",
		Body:      longParagraph + "\n" + longParagraph,
	}
	if err := p.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if item.BackgroundFile == "" {
		t.Error("expected background selection")
	}
	if item.CuesJSON == "" {
		t.Fatal("expected planned cues")
	}

	var board storyboard.Storyboard
	if err := json.Unmarshal([]byte(item.CuesJSON), &board); err != nil {
		t.Fatalf("decode cues: %v", err)
	}
	if len(board.Cues) != 2 {
		t.Errorf("cues = %d, want 2", len(board.Cues))
	}
	if board.Total <= 0 {
		t.Errorf("total = %v, want > 0", board.Total)
	}
}

func TestExecuteStoryPrefersThemeFolder(t *testing.T) {
	p, base := newPlanner(t)
	testsupport.WriteFile(t, filepath.Join(base, "assets", "backgrounds", "nature", "forest.mp4"), []byte("x"))

	item := &queue.Item{
		ID:              2,
		Kind:            queue.KindStory,
		ContentID:       "story-2",
		Body:            longParagraph,
		BackgroundTheme: "nature",
	}
	if err := p.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if filepath.Base(item.BackgroundFile) != "forest.mp4" {
		t.Errorf("background = %q, want forest.mp4", item.BackgroundFile)
	}
}

func TestExecuteReelItem(t *testing.T) {
	p, _ := newPlanner(t)

	item := &queue.Item{
		ID:        3,
		Kind:      queue.KindReel,
		ContentID: "hook-1",
		Body:      "You won't believe this trick.",
	}
	if err := p.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if filepath.Base(item.BackgroundFile) != "hook.mp4" {
		t.Errorf("hook clip = %q", item.BackgroundFile)
	}
	if filepath.Base(item.CTAFile) != "cta.mp4" {
		t.Errorf("cta clip = %q", item.CTAFile)
	}

	var board storyboard.Storyboard
	if err := json.Unmarshal([]byte(item.CuesJSON), &board); err != nil {
		t.Fatalf("decode cues: %v", err)
	}
	if len(board.Cues) != 1 {
		t.Fatalf("cues = %d, want 1", len(board.Cues))
	}
	// Hook captions cover the whole clip; the renderer resolves the end.
	if board.Cues[0].Duration != 0 {
		t.Errorf("hook cue duration = %v, want 0", board.Cues[0].Duration)
	}
}

func TestExecuteEmptyStoryGoesToReview(t *testing.T) {
	p, _ := newPlanner(t)

	item := &queue.Item{ID: 4, Kind: queue.KindStory, ContentID: "story-4", Body: "   "}
	err := p.Execute(context.Background(), item)
	if err == nil {
		t.Fatal("expected error for empty story")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if services.FailureStatus(err) != queue.StatusReview {
		t.Errorf("FailureStatus = %q, want review", services.FailureStatus(err))
	}
}

func TestExecuteMissingAssetsReported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, err := New(cfg, assets.NewSelector(cfg), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	item := &queue.Item{ID: 5, Kind: queue.KindStory, ContentID: "story-5", Body: longParagraph}
	err = p.Execute(context.Background(), item)
	if err == nil {
		t.Fatal("expected error with no background assets")
	}
	if !strings.Contains(err.Error(), "select background") {
		t.Errorf("error = %v, want background selection failure", err)
	}
}

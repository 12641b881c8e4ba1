package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelsmith/internal/config"
	"reelsmith/internal/services"
)

func testSelector(t *testing.T) (*Selector, string) {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.BackgroundsDir = filepath.Join(root, "backgrounds")
	cfg.Paths.MusicDir = filepath.Join(root, "music")
	cfg.Paths.HookVideosDir = filepath.Join(root, "hooks")
	cfg.Paths.CTAVideosDir = filepath.Join(root, "cta")
	cfg.Paths.TrackingDir = filepath.Join(root, "tracking")
	if err := os.MkdirAll(cfg.Paths.TrackingDir, 0o755); err != nil {
		t.Fatalf("create tracking dir: %v", err)
	}
	return NewSelector(&cfg), root
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBackgroundPrefersThemeFolder(t *testing.T) {
	selector, root := testSelector(t)
	touch(t, filepath.Join(root, "backgrounds", "generic.mp4"))
	touch(t, filepath.Join(root, "backgrounds", "nature", "forest.mp4"))

	got, err := selector.Background("nature")
	if err != nil {
		t.Fatalf("Background() error = %v", err)
	}
	if filepath.Base(got) != "forest.mp4" {
		t.Errorf("Background() = %q, want forest.mp4", got)
	}
}

func TestBackgroundFallsBackToRoot(t *testing.T) {
	selector, root := testSelector(t)
	touch(t, filepath.Join(root, "backgrounds", "generic.mp4"))

	// Theme folder missing entirely.
	got, err := selector.Background("space")
	if err != nil {
		t.Fatalf("Background() error = %v", err)
	}
	if filepath.Base(got) != "generic.mp4" {
		t.Errorf("Background() = %q, want generic.mp4", got)
	}

	// Theme folder present but holding no usable video.
	touch(t, filepath.Join(root, "backgrounds", "space", "notes.txt"))
	got, err = selector.Background("space")
	if err != nil {
		t.Fatalf("Background() error = %v", err)
	}
	if filepath.Base(got) != "generic.mp4" {
		t.Errorf("Background() = %q, want generic.mp4", got)
	}
}

func TestBackgroundEmptyPool(t *testing.T) {
	selector, root := testSelector(t)
	if err := os.MkdirAll(filepath.Join(root, "backgrounds"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := selector.Background("")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Background() error = %v, want ErrNotFound", err)
	}
}

func TestMusicIsOptional(t *testing.T) {
	selector, _ := testSelector(t)

	// Folder configured but never created.
	got, err := selector.Music("calm")
	if err != nil {
		t.Fatalf("Music() error = %v", err)
	}
	if got != "" {
		t.Errorf("Music() = %q, want empty", got)
	}

	selector.cfg.Paths.MusicDir = ""
	got, err = selector.Music("calm")
	if err != nil {
		t.Fatalf("Music() error = %v", err)
	}
	if got != "" {
		t.Errorf("Music() = %q, want empty", got)
	}
}

func TestMusicIgnoresNonAudio(t *testing.T) {
	selector, root := testSelector(t)
	touch(t, filepath.Join(root, "music", "track.mp3"))
	touch(t, filepath.Join(root, "music", "cover.jpg"))
	touch(t, filepath.Join(root, "music", ".hidden.mp3"))

	got, err := selector.Music("")
	if err != nil {
		t.Fatalf("Music() error = %v", err)
	}
	if filepath.Base(got) != "track.mp3" {
		t.Errorf("Music() = %q, want track.mp3", got)
	}
}

func TestSequentialRotationWraps(t *testing.T) {
	selector, root := testSelector(t)
	selector.cfg.Assets.SelectionMode = "sequential"
	touch(t, filepath.Join(root, "hooks", "a.mp4"))
	touch(t, filepath.Join(root, "hooks", "b.mp4"))
	touch(t, filepath.Join(root, "hooks", "c.mp4"))

	want := []string{"a.mp4", "b.mp4", "c.mp4", "a.mp4"}
	for i, name := range want {
		got, err := selector.HookVideo()
		if err != nil {
			t.Fatalf("HookVideo() #%d error = %v", i, err)
		}
		if filepath.Base(got) != name {
			t.Errorf("HookVideo() #%d = %q, want %q", i, filepath.Base(got), name)
		}
	}
}

func TestSequentialRotationSurvivesRestart(t *testing.T) {
	selector, root := testSelector(t)
	selector.cfg.Assets.SelectionMode = "sequential"
	touch(t, filepath.Join(root, "cta", "a.mp4"))
	touch(t, filepath.Join(root, "cta", "b.mp4"))

	if _, err := selector.CTAVideo(); err != nil {
		t.Fatalf("CTAVideo() error = %v", err)
	}

	// A fresh selector sharing the tracking dir continues the rotation.
	fresh := NewSelector(selector.cfg)
	got, err := fresh.CTAVideo()
	if err != nil {
		t.Fatalf("CTAVideo() error = %v", err)
	}
	if filepath.Base(got) != "b.mp4" {
		t.Errorf("CTAVideo() = %q, want b.mp4", got)
	}
}

func TestRandomSelectionStaysInPool(t *testing.T) {
	selector, root := testSelector(t)
	touch(t, filepath.Join(root, "backgrounds", "a.mp4"))
	touch(t, filepath.Join(root, "backgrounds", "b.mp4"))
	selector.randInt = func(n int) int { return n - 1 }

	got, err := selector.Background("")
	if err != nil {
		t.Fatalf("Background() error = %v", err)
	}
	if filepath.Base(got) != "b.mp4" {
		t.Errorf("Background() = %q, want b.mp4", got)
	}
}

func TestTrackerUsedHooks(t *testing.T) {
	selector, _ := testSelector(t)
	tracker := selector.Tracker()

	used, err := tracker.HookUsed("hook-3")
	if err != nil {
		t.Fatalf("HookUsed() error = %v", err)
	}
	if used {
		t.Error("expected hook-3 unused")
	}

	if err := tracker.MarkHookUsed("hook-3"); err != nil {
		t.Fatalf("MarkHookUsed() error = %v", err)
	}

	used, err = tracker.HookUsed("hook-3")
	if err != nil {
		t.Fatalf("HookUsed() error = %v", err)
	}
	if !used {
		t.Error("expected hook-3 used after marking")
	}
}

package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"reelsmith/internal/config"
	"reelsmith/internal/services"
)

const selectionSequential = "sequential"

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".mkv":  {},
	".webm": {},
}

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".aac":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
}

// Selector chooses media files for a render job.
type Selector struct {
	cfg     *config.Config
	tracker *Tracker
	randInt func(n int) int
}

// NewSelector returns a selector backed by the configured asset folders and
// tracking directory.
func NewSelector(cfg *config.Config) *Selector {
	return &Selector{
		cfg:     cfg,
		tracker: NewTracker(cfg.Paths.TrackingDir),
		randInt: rand.IntN,
	}
}

// Tracker exposes the underlying rotation and used-hook tracker.
func (s *Selector) Tracker() *Tracker {
	return s.tracker
}

// Background returns a background video, preferring a theme subfolder when
// it holds usable files.
func (s *Selector) Background(theme string) (string, error) {
	return s.pick("background", s.cfg.Paths.BackgroundsDir, theme, videoExtensions)
}

// Music returns a music track, preferring a mood subfolder when it holds
// usable files. Music is optional: an unconfigured, missing, or empty folder
// yields an empty path with nil error and the video renders without a track.
func (s *Selector) Music(mood string) (string, error) {
	if strings.TrimSpace(s.cfg.Paths.MusicDir) == "" {
		return "", nil
	}
	path, err := s.pick("music", s.cfg.Paths.MusicDir, mood, audioExtensions)
	if errors.Is(err, services.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return path, err
}

// HookVideo returns a raw hook clip for a reel.
func (s *Selector) HookVideo() (string, error) {
	return s.pick("hook", s.cfg.Paths.HookVideosDir, "", videoExtensions)
}

// CTAVideo returns a call-to-action clip for a reel.
func (s *Selector) CTAVideo() (string, error) {
	return s.pick("cta", s.cfg.Paths.CTAVideosDir, "", videoExtensions)
}

func (s *Selector) pick(kind, root, category string, extensions map[string]struct{}) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: no %s folder configured", services.ErrConfiguration, kind)
	}

	if category = strings.TrimSpace(category); category != "" {
		themed := filepath.Join(root, category)
		files, err := listMedia(themed, extensions)
		if err == nil && len(files) > 0 {
			return s.choose(kind+"/"+category, files)
		}
	}

	files, err := listMedia(root, extensions)
	if err != nil {
		return "", fmt.Errorf("list %s folder: %w", kind, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no %s files under %s", services.ErrNotFound, kind, root)
	}
	return s.choose(kind, files)
}

func (s *Selector) choose(pool string, files []string) (string, error) {
	if s.cfg.Assets.SelectionMode == selectionSequential {
		index, err := s.tracker.NextIndex(pool, len(files))
		if err != nil {
			return "", err
		}
		return files[index], nil
	}
	return files[s.randInt(len(files))], nil
}

// listMedia returns the full paths of media files directly under dir, in
// name order. os.ReadDir sorts for us, which keeps sequential rotation
// stable across runs.
func listMedia(dir string, extensions map[string]struct{}) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := extensions[ext]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

package testsupport

import (
	"path/filepath"
	"testing"

	"reelsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StoriesCSV = filepath.Join(base, "content", "stories.csv")
	cfg.Paths.HooksCSV = filepath.Join(base, "content", "hooks.csv")
	cfg.Paths.BackgroundsDir = filepath.Join(base, "assets", "backgrounds")
	cfg.Paths.HookVideosDir = filepath.Join(base, "assets", "hooks")
	cfg.Paths.CTAVideosDir = filepath.Join(base, "assets", "cta")
	cfg.Paths.MusicDir = filepath.Join(base, "assets", "music")
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.TrackingDir = filepath.Join(base, "tracking")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithSequentialAssets switches asset selection to sequential rotation.
func WithSequentialAssets() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Assets.SelectionMode = "sequential"
	}
}

// WithTTS enables synthesis against the given base URL.
func WithTTS(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TTS.Enabled = true
		cfg.TTS.APIKey = "test-key"
		cfg.TTS.Voice = "test-voice"
		cfg.TTS.BaseURL = baseURL
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}

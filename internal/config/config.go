package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains content table locations and working directories.
type Paths struct {
	StoriesCSV     string `toml:"stories_csv"`
	HooksCSV       string `toml:"hooks_csv"`
	BackgroundsDir string `toml:"backgrounds_dir"`
	HookVideosDir  string `toml:"hook_videos_dir"`
	CTAVideosDir   string `toml:"cta_videos_dir"`
	MusicDir       string `toml:"music_dir"`
	LibraryDir     string `toml:"library_dir"`
	StagingDir     string `toml:"staging_dir"`
	TrackingDir    string `toml:"tracking_dir"`
	LogDir         string `toml:"log_dir"`
}

// Captions contains font and placement settings for burned-in text.
type Captions struct {
	TitleFontFile       string  `toml:"title_font_file"`
	BodyFontFile        string  `toml:"body_font_file"`
	TitleFontSize       float64 `toml:"title_font_size"`
	BodyFontSize        float64 `toml:"body_font_size"`
	MinFontSize         float64 `toml:"min_font_size"`
	TextColor           string  `toml:"text_color"`
	LineSpacing         float64 `toml:"line_spacing"`
	BlockSpacing        float64 `toml:"block_spacing"`
	TitlePositionFactor float64 `toml:"title_position_factor"`
	StoryPositionFactor float64 `toml:"story_position_factor"`
	HookPositionFactor  float64 `toml:"hook_position_factor"`
	CombineTitleCard    bool    `toml:"combine_title_card"`
}

// Segmentation contains story-splitting behavior.
type Segmentation struct {
	MaxChars              int  `toml:"max_chars"`
	MinLength             int  `toml:"min_length"`
	OneSentencePerSegment bool `toml:"one_sentence_per_segment"`
	UseParagraphs         bool `toml:"use_paragraphs"`
}

// Timing contains reading-speed pacing settings.
type Timing struct {
	WordsPerMinute     float64 `toml:"words_per_minute"`
	MinSegmentSeconds  float64 `toml:"min_segment_seconds"`
	MaxSegmentSeconds  float64 `toml:"max_segment_seconds"`
	TitleCardSeconds   float64 `toml:"title_card_seconds"`
	FadeSeconds        float64 `toml:"fade_seconds"`
	ShowTitleByDefault bool    `toml:"show_title_by_default"`
}

// SafeArea contains the platform UI exclusion margins, in pixels on the
// output frame.
type SafeArea struct {
	Enabled      bool `toml:"enabled"`
	MarginTop    int  `toml:"margin_top"`
	MarginBottom int  `toml:"margin_bottom"`
	MarginLeft   int  `toml:"margin_left"`
	MarginRight  int  `toml:"margin_right"`
}

// Render contains output frame and encoder settings.
type Render struct {
	FrameWidth      int     `toml:"frame_width"`
	FrameHeight     int     `toml:"frame_height"`
	FrameRate       int     `toml:"frame_rate"`
	VideoCodec      string  `toml:"video_codec"`
	AudioCodec      string  `toml:"audio_codec"`
	AudioBitrate    string  `toml:"audio_bitrate"`
	Preset          string  `toml:"preset"`
	OverlayOpacity  float64 `toml:"overlay_opacity"`
	MusicVolume     float64 `toml:"music_volume"`
	NarrationVolume float64 `toml:"narration_volume"`
}

// TTS contains narration synthesis settings.
type TTS struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	Voice          string `toml:"voice"`
	Model          string `toml:"model"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Assets contains background/music selection behavior.
type Assets struct {
	SelectionMode string `toml:"selection_mode"`
}

// Organize contains settings for library filenames and bookkeeping.
type Organize struct {
	Project           string `toml:"project"`
	SummaryWords      int    `toml:"summary_words"`
	OverwriteExisting bool   `toml:"overwrite_existing"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values.
//
// Sections by subsystem:
//   - Paths: content tables, asset folders, staging/library/log directories
//   - Captions: fonts, sizes, spacing, vertical position factors
//   - Segmentation: story splitting strategy knobs
//   - Timing: words-per-minute pacing and duration clamps
//   - SafeArea: platform UI margins on the output frame
//   - Render: frame geometry and encoder settings
//   - TTS: narration synthesis provider
//   - Assets: background/music selection mode
//   - Organize: library filename template inputs
//   - Notifications: ntfy push settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Captions      Captions      `toml:"captions"`
	Segmentation  Segmentation  `toml:"segmentation"`
	Timing        Timing        `toml:"timing"`
	SafeArea      SafeArea      `toml:"safe_area"`
	Render        Render        `toml:"render"`
	TTS           TTS           `toml:"tts"`
	Assets        Assets        `toml:"assets"`
	Organize      Organize      `toml:"organize"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelsmith/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("reelsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the working directories a batch run needs.
// LibraryDir is created best-effort so runs can start while external storage
// is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.LogDir, c.Paths.TrackingDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		_ = os.MkdirAll(c.Paths.LibraryDir, 0o755)
	}
	return nil
}

// QueueDatabasePath returns the location of the job queue database.
func (c *Config) QueueDatabasePath() string {
	return filepath.Join(c.Paths.StagingDir, "queue.db")
}

// FFmpegBinary returns the ffmpeg executable name used for rendering.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

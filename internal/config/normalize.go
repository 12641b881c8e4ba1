package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCaptions(); err != nil {
		return err
	}
	c.normalizeTTS()
	c.normalizeAssets()
	c.normalizeOrganize()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"paths.stories_csv", &c.Paths.StoriesCSV},
		{"paths.hooks_csv", &c.Paths.HooksCSV},
		{"paths.backgrounds_dir", &c.Paths.BackgroundsDir},
		{"paths.hook_videos_dir", &c.Paths.HookVideosDir},
		{"paths.cta_videos_dir", &c.Paths.CTAVideosDir},
		{"paths.music_dir", &c.Paths.MusicDir},
		{"paths.library_dir", &c.Paths.LibraryDir},
		{"paths.staging_dir", &c.Paths.StagingDir},
		{"paths.tracking_dir", &c.Paths.TrackingDir},
		{"paths.log_dir", &c.Paths.LogDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeCaptions() error {
	var err error
	if c.Captions.TitleFontFile = strings.TrimSpace(c.Captions.TitleFontFile); c.Captions.TitleFontFile != "" {
		if c.Captions.TitleFontFile, err = expandPath(c.Captions.TitleFontFile); err != nil {
			return fmt.Errorf("captions.title_font_file: %w", err)
		}
	}
	if c.Captions.BodyFontFile = strings.TrimSpace(c.Captions.BodyFontFile); c.Captions.BodyFontFile != "" {
		if c.Captions.BodyFontFile, err = expandPath(c.Captions.BodyFontFile); err != nil {
			return fmt.Errorf("captions.body_font_file: %w", err)
		}
	}
	c.Captions.TextColor = strings.TrimSpace(c.Captions.TextColor)
	if c.Captions.TextColor == "" {
		c.Captions.TextColor = defaultTextColor
	}
	return nil
}

func (c *Config) normalizeTTS() {
	c.TTS.APIKey = strings.TrimSpace(c.TTS.APIKey)
	if c.TTS.APIKey == "" {
		if value, ok := os.LookupEnv("ELEVENLABS_API_KEY"); ok {
			c.TTS.APIKey = strings.TrimSpace(value)
		}
	}
	c.TTS.Voice = strings.TrimSpace(c.TTS.Voice)
	c.TTS.Model = strings.TrimSpace(c.TTS.Model)
	if c.TTS.Model == "" {
		c.TTS.Model = defaultTTSModel
	}
	c.TTS.BaseURL = strings.TrimRight(strings.TrimSpace(c.TTS.BaseURL), "/")
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
}

func (c *Config) normalizeAssets() {
	c.Assets.SelectionMode = strings.ToLower(strings.TrimSpace(c.Assets.SelectionMode))
	if c.Assets.SelectionMode == "" {
		c.Assets.SelectionMode = defaultSelectionMode
	}
}

func (c *Config) normalizeOrganize() {
	c.Organize.Project = strings.TrimSpace(c.Organize.Project)
	if c.Organize.Project == "" {
		c.Organize.Project = defaultProject
	}
	if c.Organize.SummaryWords <= 0 {
		c.Organize.SummaryWords = defaultSummaryWords
	}
}

func (c *Config) normalizeRender() {
	c.Render.VideoCodec = strings.TrimSpace(c.Render.VideoCodec)
	if c.Render.VideoCodec == "" {
		c.Render.VideoCodec = defaultVideoCodec
	}
	c.Render.AudioCodec = strings.TrimSpace(c.Render.AudioCodec)
	if c.Render.AudioCodec == "" {
		c.Render.AudioCodec = defaultAudioCodec
	}
	c.Render.AudioBitrate = strings.TrimSpace(c.Render.AudioBitrate)
	if c.Render.AudioBitrate == "" {
		c.Render.AudioBitrate = defaultAudioBitrate
	}
	c.Render.Preset = strings.TrimSpace(c.Render.Preset)
	if c.Render.Preset == "" {
		c.Render.Preset = defaultPreset
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

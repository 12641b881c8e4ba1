package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Layout mistakes are rejected
// here, before any item is processed.
func (c *Config) Validate() error {
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateSafeArea(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.TitleFontSize <= 0 {
		return errors.New("captions.title_font_size must be positive")
	}
	if c.Captions.BodyFontSize <= 0 {
		return errors.New("captions.body_font_size must be positive")
	}
	if c.Captions.MinFontSize <= 0 {
		return errors.New("captions.min_font_size must be positive")
	}
	if c.Captions.MinFontSize > c.Captions.BodyFontSize {
		return errors.New("captions.min_font_size must not exceed captions.body_font_size")
	}
	if c.Captions.LineSpacing < 0 || c.Captions.BlockSpacing < 0 {
		return errors.New("captions.line_spacing and captions.block_spacing must be >= 0")
	}
	for name, factor := range map[string]float64{
		"captions.title_position_factor": c.Captions.TitlePositionFactor,
		"captions.story_position_factor": c.Captions.StoryPositionFactor,
		"captions.hook_position_factor":  c.Captions.HookPositionFactor,
	} {
		if factor < 0 || factor > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	if c.Segmentation.MaxChars <= 0 {
		return errors.New("segmentation.max_chars must be positive")
	}
	if c.Segmentation.MinLength < 0 {
		return errors.New("segmentation.min_length must be >= 0")
	}
	if c.Segmentation.MinLength >= c.Segmentation.MaxChars {
		return errors.New("segmentation.min_length must be less than segmentation.max_chars")
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Timing.WordsPerMinute <= 0 {
		return errors.New("timing.words_per_minute must be positive")
	}
	if c.Timing.MinSegmentSeconds <= 0 {
		return errors.New("timing.min_segment_seconds must be positive")
	}
	if c.Timing.MaxSegmentSeconds < c.Timing.MinSegmentSeconds {
		return errors.New("timing.max_segment_seconds must be >= timing.min_segment_seconds")
	}
	if c.Timing.TitleCardSeconds < 0 {
		return errors.New("timing.title_card_seconds must be >= 0")
	}
	if c.Timing.FadeSeconds < 0 {
		return errors.New("timing.fade_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FrameWidth <= 0 || c.Render.FrameHeight <= 0 {
		return errors.New("render.frame_width and render.frame_height must be positive")
	}
	if c.Render.FrameRate <= 0 {
		return errors.New("render.frame_rate must be positive")
	}
	if c.Render.OverlayOpacity < 0 || c.Render.OverlayOpacity > 1 {
		return errors.New("render.overlay_opacity must be between 0 and 1")
	}
	if c.Render.MusicVolume < 0 || c.Render.NarrationVolume < 0 {
		return errors.New("render.music_volume and render.narration_volume must be >= 0")
	}
	return nil
}

// validateSafeArea rejects margin sets that leave no usable text band.
// Degenerate margins would otherwise surface as nonsense placement on every
// rendered video, so the check runs at load time.
func (c *Config) validateSafeArea() error {
	sa := c.SafeArea
	if sa.MarginTop < 0 || sa.MarginBottom < 0 || sa.MarginLeft < 0 || sa.MarginRight < 0 {
		return errors.New("safe_area margins must be >= 0")
	}
	if !sa.Enabled {
		return nil
	}
	if sa.MarginTop+sa.MarginBottom >= c.Render.FrameHeight {
		return fmt.Errorf("safe_area margins leave no vertical space: top %d + bottom %d >= frame height %d",
			sa.MarginTop, sa.MarginBottom, c.Render.FrameHeight)
	}
	if sa.MarginLeft+sa.MarginRight >= c.Render.FrameWidth {
		return fmt.Errorf("safe_area margins leave no horizontal space: left %d + right %d >= frame width %d",
			sa.MarginLeft, sa.MarginRight, c.Render.FrameWidth)
	}
	return nil
}

func (c *Config) validateTTS() error {
	if !c.TTS.Enabled {
		return nil
	}
	if c.TTS.APIKey == "" {
		return errors.New("tts.api_key must be set when tts.enabled is true (or set ELEVENLABS_API_KEY)")
	}
	if c.TTS.Voice == "" {
		return errors.New("tts.voice must be set when tts.enabled is true")
	}
	return nil
}

func (c *Config) validateAssets() error {
	switch c.Assets.SelectionMode {
	case "random", "sequential":
		return nil
	default:
		return fmt.Errorf("assets.selection_mode must be %q or %q", "random", "sequential")
	}
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	if topic := strings.TrimSpace(c.Notifications.NtfyTopic); topic != "" && strings.ContainsAny(topic, " \t") {
		return errors.New("notifications.ntfy_topic must not contain whitespace")
	}
	return nil
}

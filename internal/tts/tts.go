package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelsmith/internal/config"
	"reelsmith/internal/services"
)

// Synthesizer turns narration text into an audio file.
type Synthesizer interface {
	// Synthesize writes spoken audio for text to outputPath.
	Synthesize(ctx context.Context, text, outputPath string) error
	// Enabled reports whether synthesis actually happens.
	Enabled() bool
}

// New returns a synthesizer for the given configuration. Disabled
// configurations get a noop implementation.
func New(cfg *config.Config) Synthesizer {
	if !cfg.TTS.Enabled {
		return noop{}
	}
	timeout := time.Duration(cfg.TTS.TimeoutSeconds) * time.Second
	return &Client{
		cfg:        cfg.TTS,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Client synthesizes speech through an ElevenLabs-compatible endpoint.
type Client struct {
	cfg        config.TTS
	httpClient *http.Client
}

type synthesisRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Enabled always returns true for a live client.
func (c *Client) Enabled() bool {
	return true
}

// Synthesize posts the text to the voice endpoint and streams the returned
// audio to outputPath. The file is written atomically.
func (c *Client) Synthesize(ctx context.Context, text, outputPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty narration text", services.ErrValidation)
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "v1", "text-to-speech", c.cfg.Voice)
	if err != nil {
		return fmt.Errorf("%w: build synthesis url: %v", services.ErrConfiguration, err)
	}

	payload, err := json.Marshal(synthesisRequest{Text: text, ModelID: c.cfg.Model})
	if err != nil {
		return fmt.Errorf("encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: synthesis request: %v", services.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return writeAudio(resp.Body, outputPath)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: synthesis rejected (%d): %s", services.ErrConfiguration, resp.StatusCode, detail)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: synthesis unavailable (%d): %s", services.ErrTransient, resp.StatusCode, detail)
	default:
		return fmt.Errorf("%w: synthesis failed (%d): %s", services.ErrExternalTool, resp.StatusCode, detail)
	}
}

func writeAudio(body io.Reader, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	tmp := outputPath + ".partial"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	written, err := io.Copy(file, body)
	closeErr := file.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: stream audio: %v", services.ErrTransient, err)
	}
	if closeErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close audio file: %w", closeErr)
	}
	if written == 0 {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: synthesis returned empty audio", services.ErrExternalTool)
	}
	if err := os.Rename(tmp, outputPath); err != nil {
		return fmt.Errorf("finalize audio file: %w", err)
	}
	return nil
}

type noop struct{}

func (noop) Enabled() bool { return false }

func (noop) Synthesize(context.Context, string, string) error {
	return nil
}

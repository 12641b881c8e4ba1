package voicer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/tts"
)

// Voicer synthesizes narration for reel items.
type Voicer struct {
	cfg    *config.Config
	synth  tts.Synthesizer
	logger *slog.Logger
}

func New(cfg *config.Config, synth tts.Synthesizer, logger *slog.Logger) *Voicer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Voicer{
		cfg:    cfg,
		synth:  synth,
		logger: logging.NewComponentLogger(logger, "voicer"),
	}
}

// Name identifies the stage in logs and progress fields.
func (v *Voicer) Name() string { return "voice" }

// Execute synthesizes narration audio for a reel. The narration column wins
// over the display text when both are present.
func (v *Voicer) Execute(ctx context.Context, item *queue.Item) error {
	if item.Kind != queue.KindReel || !v.synth.Enabled() {
		item.SetProgress(v.Name(), "narration skipped", 50)
		return nil
	}

	text := strings.TrimSpace(item.NarrationText)
	if text == "" {
		text = strings.TrimSpace(item.Body)
	}
	if text == "" {
		item.SetProgress(v.Name(), "nothing to narrate", 50)
		return nil
	}

	output := filepath.Join(v.cfg.Paths.StagingDir, "narration",
		fmt.Sprintf("item-%d.mp3", item.ID))
	if err := v.synth.Synthesize(ctx, text, output); err != nil {
		return services.Wrap(nil, v.Name(), "synthesize narration", "", err)
	}

	item.NarrationFile = output
	item.SetProgress(v.Name(), "narration synthesized", 50)
	v.logger.InfoContext(ctx, "narration synthesized",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String("file", output))
	return nil
}

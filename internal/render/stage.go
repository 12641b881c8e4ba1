package render

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/storyboard"
)

// Stage adapts the renderer to the pipeline: it decodes the planned cues
// from the item and renders into the staging directory.
type Stage struct {
	cfg      *config.Config
	renderer *Renderer
	logger   *slog.Logger
}

func NewStage(cfg *config.Config, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:      cfg,
		renderer: New(cfg, logger),
		logger:   logging.NewComponentLogger(logger, "render"),
	}
}

// Name identifies the stage in logs and progress fields.
func (s *Stage) Name() string { return "render" }

// Execute renders the item's video into staging and records the output path.
func (s *Stage) Execute(ctx context.Context, item *queue.Item) error {
	if item.CuesJSON == "" {
		return services.Wrap(services.ErrValidation, s.Name(), "load cues", "item has no planned cues", nil)
	}
	var board storyboard.Storyboard
	if err := json.Unmarshal([]byte(item.CuesJSON), &board); err != nil {
		return services.Wrap(services.ErrValidation, s.Name(), "decode cues", "", err)
	}

	output := filepath.Join(s.cfg.Paths.StagingDir, "renders",
		fmt.Sprintf("item-%d.mp4", item.ID))
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return services.Wrap(nil, s.Name(), "create render directory", "", err)
	}

	var err error
	switch item.Kind {
	case queue.KindReel:
		err = s.renderer.RenderReel(ctx, ReelJob{
			Board:     &board,
			Hook:      item.BackgroundFile,
			CTA:       item.CTAFile,
			Music:     item.MusicFile,
			Narration: item.NarrationFile,
			Output:    output,
		})
	default:
		err = s.renderer.RenderStory(ctx, StoryJob{
			Board:      &board,
			Background: item.BackgroundFile,
			Music:      item.MusicFile,
			Narration:  item.NarrationFile,
			Output:     output,
		})
	}
	if err != nil {
		return services.Wrap(nil, s.Name(), "render video", "", err)
	}

	item.RenderedFile = output
	item.SetProgress(s.Name(), "video rendered", 75)
	s.logger.InfoContext(ctx, "video rendered",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String("file", output))
	return nil
}

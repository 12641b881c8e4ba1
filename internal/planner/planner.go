package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"reelsmith/internal/assets"
	"reelsmith/internal/config"
	"reelsmith/internal/content"
	"reelsmith/internal/fontmetrics"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/storyboard"
)

// Planner plans one queue item: storyboard plus asset selection.
type Planner struct {
	cfg      *config.Config
	builder  *storyboard.Builder
	selector *assets.Selector
	logger   *slog.Logger
}

// New loads the configured fonts and returns a ready planner.
func New(cfg *config.Config, selector *assets.Selector, logger *slog.Logger) (*Planner, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	titleFont, err := fontmetrics.Load(cfg.Captions.TitleFontFile, cfg.Captions.LineSpacing)
	if err != nil {
		return nil, fmt.Errorf("%w: load title font: %v", services.ErrConfiguration, err)
	}
	bodyFont, err := fontmetrics.Load(cfg.Captions.BodyFontFile, cfg.Captions.LineSpacing)
	if err != nil {
		return nil, fmt.Errorf("%w: load body font: %v", services.ErrConfiguration, err)
	}

	return &Planner{
		cfg:      cfg,
		builder:  storyboard.NewBuilder(cfg, titleFont, bodyFont),
		selector: selector,
		logger:   logging.NewComponentLogger(logger, "planner"),
	}, nil
}

// Name identifies the stage in logs and progress fields.
func (p *Planner) Name() string { return "plan" }

// Execute builds the storyboard and selects assets, storing both on the
// item. The caller persists the mutation.
func (p *Planner) Execute(ctx context.Context, item *queue.Item) error {
	board, err := p.plan(item)
	if err != nil {
		return err
	}

	cues, err := json.Marshal(board)
	if err != nil {
		return services.Wrap(nil, p.Name(), "encode cues", "", err)
	}
	item.CuesJSON = string(cues)

	if err := p.selectAssets(item); err != nil {
		return err
	}

	item.SetProgress(p.Name(), fmt.Sprintf("%d cues planned", len(board.Cues)), 25)
	p.logger.InfoContext(ctx, "item planned",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.Int("cues", len(board.Cues)),
		logging.Float64("seconds", board.Total))
	return nil
}

func (p *Planner) plan(item *queue.Item) (*storyboard.Storyboard, error) {
	switch item.Kind {
	case queue.KindStory:
		record := content.StoryRecord{
			ID:              item.ContentID,
			Title:           item.Title,
			Text:            item.Body,
			BackgroundTheme: item.BackgroundTheme,
			MusicMood:       item.MusicMood,
		}
		if item.ShowTitle != nil {
			record.ShowTitle = content.OptionalBool{Value: *item.ShowTitle, Valid: true}
		}
		board, err := p.builder.BuildStory(record)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, p.Name(), "build storyboard", "", err)
		}
		return board, nil
	case queue.KindReel:
		board, err := p.builder.BuildHook(item.Body)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, p.Name(), "build hook card", "", err)
		}
		return board, nil
	default:
		return nil, services.Wrap(services.ErrValidation, p.Name(), "plan item",
			fmt.Sprintf("unknown kind %q", item.Kind), nil)
	}
}

func (p *Planner) selectAssets(item *queue.Item) error {
	switch item.Kind {
	case queue.KindStory:
		background, err := p.selector.Background(item.BackgroundTheme)
		if err != nil {
			return services.Wrap(nil, p.Name(), "select background", "", err)
		}
		item.BackgroundFile = background
	case queue.KindReel:
		hook, err := p.selector.HookVideo()
		if err != nil {
			return services.Wrap(nil, p.Name(), "select hook clip", "", err)
		}
		cta, err := p.selector.CTAVideo()
		if err != nil {
			return services.Wrap(nil, p.Name(), "select cta clip", "", err)
		}
		item.BackgroundFile = hook
		item.CTAFile = cta
	}

	music, err := p.selector.Music(item.MusicMood)
	if err != nil {
		return services.Wrap(nil, p.Name(), "select music", "", err)
	}
	item.MusicFile = music
	return nil
}

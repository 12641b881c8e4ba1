package storyboard

import (
	"fmt"
	"strings"

	"reelsmith/internal/config"
	"reelsmith/internal/content"
	"reelsmith/internal/fontmetrics"
	"reelsmith/internal/layout"
	"reelsmith/internal/segment"
	"reelsmith/internal/timing"
)

// Cue is one positioned, timed caption. Duration zero means "for the whole
// clip" and is resolved by the renderer (hook reels).
type Cue struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size"`
}

// Storyboard is the ordered cue sequence for one video. Title is nil when no
// title card is shown; with a combined card it shares the first cue's time
// range instead of preceding it.
type Storyboard struct {
	Title *Cue    `json:"title,omitempty"`
	Cues  []Cue   `json:"cues"`
	Total float64 `json:"total"`
}

// Builder constructs storyboards from one configuration bundle. Builders are
// stateless across calls and safe for concurrent use if the measurers are.
type Builder struct {
	cfg       *config.Config
	titleFont fontmetrics.Measurer
	bodyFont  fontmetrics.Measurer
}

func NewBuilder(cfg *config.Config, titleFont, bodyFont fontmetrics.Measurer) *Builder {
	return &Builder{cfg: cfg, titleFont: titleFont, bodyFont: bodyFont}
}

// BuildStory produces the cue sequence for a narrated story video.
func (b *Builder) BuildStory(rec content.StoryRecord) (*Storyboard, error) {
	segments := segment.Split(rec.Text, segment.Config{
		MaxChars:              b.cfg.Segmentation.MaxChars,
		MinLength:             b.cfg.Segmentation.MinLength,
		OneSentencePerSegment: b.cfg.Segmentation.OneSentencePerSegment,
		UseParagraphs:         b.cfg.Segmentation.UseParagraphs,
	})
	if len(segments) == 0 {
		return nil, fmt.Errorf("story %s: no segments after splitting", rec.ID)
	}

	band := b.band()
	pace := timing.Options{
		WordsPerMinute: b.cfg.Timing.WordsPerMinute,
		MinSeconds:     b.cfg.Timing.MinSegmentSeconds,
		MaxSeconds:     b.cfg.Timing.MaxSegmentSeconds,
	}
	durations := timing.Durations(segments, pace)

	title := strings.TrimSpace(rec.Title)
	showTitle := rec.ShowTitle.Or(b.cfg.Timing.ShowTitleByDefault) && title != ""
	separateTitle := showTitle && !b.cfg.Captions.CombineTitleCard

	leadIn := 0.0
	if separateTitle {
		leadIn = b.cfg.Timing.TitleCardSeconds
	}
	starts := timing.StartTimes(durations, leadIn)

	board := &Storyboard{Total: timing.Total(durations, leadIn)}
	for i, text := range segments {
		size, err := b.bodyFont.Measure(text, b.cfg.Captions.BodyFontSize, band.Width())
		if err != nil {
			return nil, fmt.Errorf("measure segment %d: %w", i+1, err)
		}
		x, y := band.Position(size.Width, size.Height, b.cfg.Captions.StoryPositionFactor)
		board.Cues = append(board.Cues, Cue{
			Index:    i + 1,
			Text:     text,
			Start:    starts[i],
			Duration: durations[i],
			X:        x,
			Y:        y,
			Width:    size.Width,
			Height:   size.Height,
			FontSize: b.cfg.Captions.BodyFontSize,
		})
	}

	if !showTitle {
		return board, nil
	}

	if separateTitle {
		size, err := b.titleFont.Measure(title, b.cfg.Captions.TitleFontSize, band.Width())
		if err != nil {
			return nil, fmt.Errorf("measure title: %w", err)
		}
		x, y := band.Position(size.Width, size.Height, b.cfg.Captions.TitlePositionFactor)
		board.Title = &Cue{
			Text:     title,
			Start:    0,
			Duration: b.cfg.Timing.TitleCardSeconds,
			X:        x,
			Y:        y,
			Width:    size.Width,
			Height:   size.Height,
			FontSize: b.cfg.Captions.TitleFontSize,
		}
		return board, nil
	}

	if err := b.combineTitleCard(board, title, band); err != nil {
		return nil, err
	}
	return board, nil
}

// combineTitleCard stacks the title above the first segment on a shared
// card. When the stack overflows the band the body font shrinks once and the
// card is re-measured; a card that still overflows renders as-is.
func (b *Builder) combineTitleCard(board *Storyboard, title string, band layout.SafeArea) error {
	titleSize, err := b.titleFont.Measure(title, b.cfg.Captions.TitleFontSize, band.Width())
	if err != nil {
		return fmt.Errorf("measure title: %w", err)
	}

	first := &board.Cues[0]
	bodySize := fontmetrics.Size{Width: first.Width, Height: first.Height}
	bodyFontSize := first.FontSize

	spacing := b.cfg.Captions.BlockSpacing
	total := titleSize.Height + spacing + bodySize.Height
	if excess := total - band.Height(); excess > 0 {
		bodyFontSize = layout.ShrunkFontSize(bodyFontSize, excess, band.Height(), b.cfg.Captions.MinFontSize)
		bodySize, err = b.bodyFont.Measure(first.Text, bodyFontSize, band.Width())
		if err != nil {
			return fmt.Errorf("re-measure first segment: %w", err)
		}
		total = titleSize.Height + spacing + bodySize.Height
	}

	_, top := band.Position(titleSize.Width, total, b.cfg.Captions.TitlePositionFactor)
	titleX, _ := band.Position(titleSize.Width, titleSize.Height, 0)
	bodyX, _ := band.Position(bodySize.Width, bodySize.Height, 0)

	board.Title = &Cue{
		Text:     title,
		Start:    first.Start,
		Duration: first.Duration,
		X:        titleX,
		Y:        top,
		Width:    titleSize.Width,
		Height:   titleSize.Height,
		FontSize: b.cfg.Captions.TitleFontSize,
	}
	first.X = bodyX
	first.Y = top + titleSize.Height + spacing
	first.Width = bodySize.Width
	first.Height = bodySize.Height
	first.FontSize = bodyFontSize
	return nil
}

// BuildHook produces the single full-clip cue for a hook reel.
func (b *Builder) BuildHook(text string) (*Storyboard, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("hook text is empty")
	}

	band := b.band()
	size, err := b.titleFont.Measure(text, b.cfg.Captions.TitleFontSize, band.Width())
	if err != nil {
		return nil, fmt.Errorf("measure hook: %w", err)
	}
	x, y := band.Position(size.Width, size.Height, b.cfg.Captions.HookPositionFactor)
	return &Storyboard{
		Cues: []Cue{{
			Index:    1,
			Text:     text,
			Start:    0,
			Duration: 0,
			X:        x,
			Y:        y,
			Width:    size.Width,
			Height:   size.Height,
			FontSize: b.cfg.Captions.TitleFontSize,
		}},
	}, nil
}

// band returns the text placement band: the configured safe area, or the
// whole frame when the margin scheme is disabled.
func (b *Builder) band() layout.SafeArea {
	frameW := float64(b.cfg.Render.FrameWidth)
	frameH := float64(b.cfg.Render.FrameHeight)
	if !b.cfg.SafeArea.Enabled {
		return layout.FullFrame(frameW, frameH)
	}
	band, err := layout.ComputeSafeArea(frameW, frameH, layout.Margins{
		Top:    float64(b.cfg.SafeArea.MarginTop),
		Bottom: float64(b.cfg.SafeArea.MarginBottom),
		Left:   float64(b.cfg.SafeArea.MarginLeft),
		Right:  float64(b.cfg.SafeArea.MarginRight),
	})
	if err != nil {
		// Margins are validated at config load; fall back to the frame
		// rather than emitting nonsense coordinates.
		return layout.FullFrame(frameW, frameH)
	}
	return band
}

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/storyboard"
)

// StoryJob describes a narrated story render.
type StoryJob struct {
	Board      *storyboard.Storyboard
	Background string
	Music      string
	Narration  string
	Output     string
}

// ReelJob describes a hook+CTA reel render.
type ReelJob struct {
	Board     *storyboard.Storyboard
	Hook      string
	CTA       string
	Music     string
	Narration string
	Output    string
}

// Renderer drives ffmpeg to compose finished videos.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger

	run   func(ctx context.Context, stream *ffmpeg.Stream) error
	probe func(path string) (float64, error)
}

// New returns a renderer using the system ffmpeg binary.
func New(cfg *config.Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Renderer{cfg: cfg, logger: logger}
	r.run = r.runFFmpeg
	r.probe = probeDuration
	return r
}

// RenderStory renders a looping background with burned-in story captions and
// the configured audio mix.
func (r *Renderer) RenderStory(ctx context.Context, job StoryJob) error {
	if job.Board == nil || len(job.Board.Cues) == 0 {
		return fmt.Errorf("%w: storyboard has no cues", services.ErrValidation)
	}
	duration := job.Board.Total
	if duration <= 0 {
		return fmt.Errorf("%w: storyboard has no duration", services.ErrValidation)
	}

	assPath := job.Output + ".ass"
	if err := writeASS(assPath, job.Board, r.cfg, duration); err != nil {
		return err
	}
	defer os.Remove(assPath)

	background := ffmpeg.Input(job.Background, ffmpeg.KwArgs{"stream_loop": -1})
	video := r.frameVideo(background.Video()).
		Filter("trim", ffmpeg.Args{fmt.Sprintf("duration=%.3f", duration)}).
		Filter("setpts", ffmpeg.Args{"PTS-STARTPTS"}).
		Filter("drawbox", ffmpeg.Args{}, ffmpeg.KwArgs{
			"x": 0, "y": 0, "w": "iw", "h": "ih",
			"color": fmt.Sprintf("black@%.2f", r.cfg.Render.OverlayOpacity),
			"t":     "fill",
		}).
		Filter("ass", ffmpeg.Args{assPath})

	audio := r.audioMix(job.Music, job.Narration, duration)

	r.logger.Info("rendering story video",
		logging.String("background", job.Background),
		logging.String("output", job.Output),
		logging.Float64("seconds", duration))

	return r.encode(ctx, video, audio, job.Output, duration)
}

// RenderReel renders a captioned hook clip followed by the CTA clip.
func (r *Renderer) RenderReel(ctx context.Context, job ReelJob) error {
	if job.Board == nil || len(job.Board.Cues) == 0 {
		return fmt.Errorf("%w: storyboard has no cues", services.ErrValidation)
	}

	hookSeconds, err := r.probe(job.Hook)
	if err != nil {
		return fmt.Errorf("%w: probe hook clip: %v", services.ErrExternalTool, err)
	}
	ctaSeconds, err := r.probe(job.CTA)
	if err != nil {
		return fmt.Errorf("%w: probe cta clip: %v", services.ErrExternalTool, err)
	}
	total := hookSeconds + ctaSeconds

	assPath := job.Output + ".ass"
	if err := writeASS(assPath, job.Board, r.cfg, hookSeconds); err != nil {
		return err
	}
	defer os.Remove(assPath)

	hook := r.frameVideo(ffmpeg.Input(job.Hook).Video()).
		Filter("ass", ffmpeg.Args{assPath})
	cta := r.frameVideo(ffmpeg.Input(job.CTA).Video())
	video := ffmpeg.Concat([]*ffmpeg.Stream{hook, cta})

	audio := r.audioMix(job.Music, job.Narration, total)

	r.logger.Info("rendering reel video",
		logging.String("hook", job.Hook),
		logging.String("cta", job.CTA),
		logging.String("output", job.Output),
		logging.Float64("seconds", total))

	return r.encode(ctx, video, audio, job.Output, total)
}

// frameVideo center-crops the source to the output aspect ratio and scales
// it to the configured frame.
func (r *Renderer) frameVideo(stream *ffmpeg.Stream) *ffmpeg.Stream {
	w, h := r.cfg.Render.FrameWidth, r.cfg.Render.FrameHeight
	return stream.
		Filter("crop", ffmpeg.Args{fmt.Sprintf("min(iw\\,ih*%d/%d):min(ih\\,iw*%d/%d)", w, h, h, w)}).
		Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", w, h)}).
		Filter("setsar", ffmpeg.Args{"1"}).
		Filter("fps", ffmpeg.Args{strconv.Itoa(r.cfg.Render.FrameRate)})
}

// audioMix builds the output audio stream, or nil when the job has neither
// music nor narration.
func (r *Renderer) audioMix(music, narration string, duration float64) *ffmpeg.Stream {
	var streams []*ffmpeg.Stream

	if narration != "" {
		streams = append(streams, ffmpeg.Input(narration).Audio().
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", r.cfg.Render.NarrationVolume)}))
	}
	if music != "" {
		streams = append(streams, ffmpeg.Input(music, ffmpeg.KwArgs{"stream_loop": -1}).Audio().
			Filter("atrim", ffmpeg.Args{fmt.Sprintf("duration=%.3f", duration)}).
			Filter("asetpts", ffmpeg.Args{"PTS-STARTPTS"}).
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", r.cfg.Render.MusicVolume)}))
	}

	switch len(streams) {
	case 0:
		return nil
	case 1:
		return streams[0]
	default:
		return ffmpeg.Filter(streams, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
			"inputs":   len(streams),
			"duration": "longest",
		})
	}
}

func (r *Renderer) encode(ctx context.Context, video, audio *ffmpeg.Stream, output string, duration float64) error {
	kwargs := ffmpeg.KwArgs{
		"c:v":    r.cfg.Render.VideoCodec,
		"preset": r.cfg.Render.Preset,
		"t":      fmt.Sprintf("%.3f", duration),
	}

	streams := []*ffmpeg.Stream{video}
	if audio != nil {
		streams = append(streams, audio)
		kwargs["c:a"] = r.cfg.Render.AudioCodec
		kwargs["b:a"] = r.cfg.Render.AudioBitrate
	} else {
		kwargs["an"] = ""
	}

	stream := ffmpeg.Output(streams, output, kwargs).OverWriteOutput()
	if err := r.run(ctx, stream); err != nil {
		return fmt.Errorf("%w: ffmpeg: %v", services.ErrExternalTool, err)
	}
	return nil
}

// runFFmpeg executes the compiled graph under the caller's context so a
// cancelled batch stops the encoder.
func (r *Renderer) runFFmpeg(ctx context.Context, stream *ffmpeg.Stream) error {
	compiled := stream.Compile()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, compiled.Path, compiled.Args[1:]...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %s", err, tailLines(stderr.String(), 5))
	}
	return nil
}

func tailLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

// probeDuration reads a media file's container duration with ffprobe.
func probeDuration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}
	seconds, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", result.Format.Duration, err)
	}
	return seconds, nil
}

package organizer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelsmith/internal/assets"
	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/textutil"
)

const videoListName = "video_list.csv"

var videoListHeader = []string{"date", "file", "kind", "content_id", "summary"}

// Organizer files finished renders into the library.
type Organizer struct {
	cfg     *config.Config
	tracker *assets.Tracker
	logger  *slog.Logger

	now func() time.Time
}

func New(cfg *config.Config, tracker *assets.Tracker, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		cfg:     cfg,
		tracker: tracker,
		logger:  logging.NewComponentLogger(logger, "organizer"),
		now:     time.Now,
	}
}

// Name identifies the stage in logs and progress fields.
func (o *Organizer) Name() string { return "organize" }

// Execute moves the rendered file into the library, appends the video list,
// and marks the source hook used for reels.
func (o *Organizer) Execute(ctx context.Context, item *queue.Item) error {
	if item.RenderedFile == "" {
		return services.Wrap(services.ErrValidation, o.Name(), "locate render", "item has no rendered file", nil)
	}
	if _, err := os.Stat(item.RenderedFile); err != nil {
		return services.Wrap(services.ErrNotFound, o.Name(), "locate render", item.RenderedFile, err)
	}

	library := o.cfg.Paths.LibraryDir
	if err := os.MkdirAll(library, 0o755); err != nil {
		return services.Wrap(nil, o.Name(), "create library", "", err)
	}

	sequence, err := o.nextSequence(library)
	if err != nil {
		return services.Wrap(nil, o.Name(), "read video list", "", err)
	}

	name := o.fileName(item, sequence)
	destination := filepath.Join(library, name)
	if !o.cfg.Organize.OverwriteExisting {
		destination = uniquePath(destination)
	}

	if err := moveFile(item.RenderedFile, destination); err != nil {
		return services.Wrap(nil, o.Name(), "move into library", "", err)
	}

	if err := o.appendVideoList(library, item, filepath.Base(destination)); err != nil {
		return services.Wrap(nil, o.Name(), "append video list", "", err)
	}

	if item.Kind == queue.KindReel && o.tracker != nil {
		if err := o.tracker.MarkHookUsed(item.ContentID); err != nil {
			return services.Wrap(nil, o.Name(), "mark hook used", "", err)
		}
	}

	item.FinalFile = destination
	item.SetProgress(o.Name(), "filed into library", 100)
	o.logger.InfoContext(ctx, "video organized",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String("file", destination))
	return nil
}

// fileName builds the descriptive library name:
// 20260825_reelsmith_003_story-7_myFriendsAmazingSecret.mp4
func (o *Organizer) fileName(item *queue.Item, sequence int) string {
	summary := textutil.CamelSummary(o.summarySource(item), o.cfg.Organize.SummaryWords)

	parts := []string{
		o.now().Format("20060102"),
		textutil.SanitizeFileName(o.cfg.Organize.Project),
		fmt.Sprintf("%03d", sequence),
		textutil.SanitizeFileName(item.ContentID),
	}
	if summary != "" {
		parts = append(parts, summary)
	}
	return strings.Join(parts, "_") + ".mp4"
}

func (o *Organizer) summarySource(item *queue.Item) string {
	if strings.TrimSpace(item.Title) != "" {
		return item.Title
	}
	return item.Body
}

// nextSequence is one past the number of videos already listed.
func (o *Organizer) nextSequence(library string) (int, error) {
	file, err := os.Open(filepath.Join(library, videoListName))
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	count := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		count++
	}
	if count > 0 {
		count-- // header row
	}
	return count + 1, nil
}

func (o *Organizer) appendVideoList(library string, item *queue.Item, fileName string) error {
	path := filepath.Join(library, videoListName)

	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(videoListHeader); err != nil {
			return err
		}
	}
	record := []string{
		o.now().Format("2006-01-02"),
		fileName,
		string(item.Kind),
		item.ContentID,
		textutil.CollapseWhitespace(o.summarySource(item)),
	}
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// uniquePath appends a numeric suffix until the path is free.
func uniquePath(path string) string {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(source, destination string) error {
	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(destination)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(source)
}

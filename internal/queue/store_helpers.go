package queue

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const itemColumns = `id, kind, content_id, title, body, narration_text,
	background_theme, music_mood, show_title, status, error_message, cues_json,
	background_file, cta_file, music_file, narration_file, rendered_file,
	final_file, progress_stage, progress_percent, progress_message,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var (
		item            Item
		kind            string
		status          string
		title           sql.NullString
		narrationText   sql.NullString
		backgroundTheme sql.NullString
		musicMood       sql.NullString
		showTitle       sql.NullBool
		errorMessage    sql.NullString
		cuesJSON        sql.NullString
		backgroundFile  sql.NullString
		ctaFile         sql.NullString
		musicFile       sql.NullString
		narrationFile   sql.NullString
		renderedFile    sql.NullString
		finalFile       sql.NullString
		progressStage   sql.NullString
		progressMessage sql.NullString
		createdAt       string
		updatedAt       string
	)

	err := row.Scan(
		&item.ID,
		&kind,
		&item.ContentID,
		&title,
		&item.Body,
		&narrationText,
		&backgroundTheme,
		&musicMood,
		&showTitle,
		&status,
		&errorMessage,
		&cuesJSON,
		&backgroundFile,
		&ctaFile,
		&musicFile,
		&narrationFile,
		&renderedFile,
		&finalFile,
		&progressStage,
		&item.ProgressPercent,
		&progressMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = Kind(kind)
	item.Status = Status(status)
	item.Title = title.String
	item.NarrationText = narrationText.String
	item.BackgroundTheme = backgroundTheme.String
	item.MusicMood = musicMood.String
	if showTitle.Valid {
		value := showTitle.Bool
		item.ShowTitle = &value
	}
	item.ErrorMessage = errorMessage.String
	item.CuesJSON = cuesJSON.String
	item.BackgroundFile = backgroundFile.String
	item.CTAFile = ctaFile.String
	item.MusicFile = musicFile.String
	item.NarrationFile = narrationFile.String
	item.RenderedFile = renderedFile.String
	item.FinalFile = finalFile.String
	item.ProgressStage = progressStage.String
	item.ProgressMessage = progressMessage.String

	item.CreatedAt, err = parseTimeString(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	item.UpdatedAt, err = parseTimeString(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableBool(value *bool) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func statusArgs(statuses []Status) []any {
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = string(status)
	}
	return args
}

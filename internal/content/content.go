package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"reelsmith/internal/textutil"
)

// OptionalBool is a tri-state flag decoded from a CSV text field. Valid is
// false when the field was absent or empty.
type OptionalBool struct {
	Value bool
	Valid bool
}

// Or returns the decoded value, or fallback when the flag was not set.
func (b OptionalBool) Or(fallback bool) bool {
	if b.Valid {
		return b.Value
	}
	return fallback
}

// ParseOptionalBool decodes the tri-state strings content tables use:
// "true", "yes", and "1" (case-insensitive) are true, empty is unset, and
// any other value is an explicit false.
func ParseOptionalBool(value string) OptionalBool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return OptionalBool{}
	}
	switch value {
	case "true", "yes", "1":
		return OptionalBool{Value: true, Valid: true}
	default:
		return OptionalBool{Value: false, Valid: true}
	}
}

// StoryRecord is one row of stories.csv, normalized and immutable.
type StoryRecord struct {
	ID              string
	Title           string
	Text            string
	BackgroundTheme string
	MusicMood       string
	ShowTitle       OptionalBool
}

// HookRecord is one row of hooks.csv. TTS, when present, is the narration
// text to synthesize instead of the display text.
type HookRecord struct {
	ID   string
	Text string
	TTS  string
}

// LoadStories reads stories.csv. The header must include a story_text
// column; id, title, background_theme, music_mood, and show_title are
// optional. Rows with empty story text are skipped. Missing ids default to
// the 1-based row ordinal.
func LoadStories(path string) ([]StoryRecord, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}
	textCol, ok := header["story_text"]
	if !ok {
		return nil, fmt.Errorf("stories table %s: missing required column story_text", path)
	}

	var records []StoryRecord
	for i, row := range rows {
		text := strings.TrimSpace(cell(row, textCol))
		if text == "" {
			continue
		}
		record := StoryRecord{
			ID:              strings.TrimSpace(cell(row, columnIndex(header, "id"))),
			Title:           strings.TrimSpace(cell(row, columnIndex(header, "title"))),
			Text:            textutil.NormalizeEscapedNewlines(text),
			BackgroundTheme: strings.TrimSpace(cell(row, columnIndex(header, "background_theme"))),
			MusicMood:       strings.TrimSpace(cell(row, columnIndex(header, "music_mood"))),
		}
		if col, ok := header["show_title"]; ok {
			record.ShowTitle = ParseOptionalBool(cell(row, col))
		}
		if record.ID == "" {
			record.ID = strconv.Itoa(i + 1)
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadHooks reads hooks.csv. The header must include a text column; id and
// tts are optional. Rows with empty text are skipped.
func LoadHooks(path string) ([]HookRecord, error) {
	rows, header, err := readTable(path)
	if err != nil {
		return nil, err
	}
	textCol, ok := header["text"]
	if !ok {
		return nil, fmt.Errorf("hooks table %s: missing required column text", path)
	}

	var records []HookRecord
	for i, row := range rows {
		text := strings.TrimSpace(cell(row, textCol))
		if text == "" {
			continue
		}
		record := HookRecord{
			ID:   strings.TrimSpace(cell(row, columnIndex(header, "id"))),
			Text: text,
			TTS:  strings.TrimSpace(cell(row, columnIndex(header, "tts"))),
		}
		if record.ID == "" {
			record.ID = strconv.Itoa(i + 1)
		}
		records = append(records, record)
	}
	return records, nil
}

// readTable parses a CSV file into data rows plus a lowercased
// header-name-to-index map. Absent optional columns map to -1 through cell.
func readTable(path string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open content table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("content table %s is empty", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func columnIndex(header map[string]int, name string) int {
	if col, ok := header[name]; ok {
		return col
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

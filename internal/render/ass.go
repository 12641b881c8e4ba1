package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reelsmith/internal/config"
	"reelsmith/internal/storyboard"
)

// assDocument renders a storyboard as an ASS subtitle file. Every dialogue
// line is pinned with \an7\pos (top-left anchor) at the coordinates the
// positioner computed; MarginL/MarginR keep libass line wrapping inside the
// safe band.
func assDocument(board *storyboard.Storyboard, cfg *config.Config, clipSeconds float64) string {
	var b strings.Builder

	marginL, marginR := 0, 0
	if cfg.SafeArea.Enabled {
		marginL = cfg.SafeArea.MarginLeft
		marginR = cfg.SafeArea.MarginRight
	}

	fmt.Fprintf(&b, "[Script Info]\n")
	fmt.Fprintf(&b, "ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", cfg.Render.FrameWidth)
	fmt.Fprintf(&b, "PlayResY: %d\n", cfg.Render.FrameHeight)
	fmt.Fprintf(&b, "WrapStyle: 0\n")
	fmt.Fprintf(&b, "ScaledBorderAndShadow: yes\n\n")

	fmt.Fprintf(&b, "[V4+ Styles]\n")
	fmt.Fprintf(&b, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: Caption,%s,%.0f,%s,&H000000FF,&H00000000,&H7F000000,0,0,0,0,100,100,0,0,1,2,1,7,%d,%d,0,1\n\n",
		fontFamily(cfg.Captions.BodyFontFile),
		cfg.Captions.BodyFontSize,
		assColor(cfg.Captions.TextColor),
		marginL, marginR)

	fmt.Fprintf(&b, "[Events]\n")
	fmt.Fprintf(&b, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	fadeMs := int(cfg.Timing.FadeSeconds * 1000)

	if board.Title != nil {
		writeDialogue(&b, *board.Title, clipSeconds, fadeMs, marginL, marginR)
	}
	for _, cue := range board.Cues {
		writeDialogue(&b, cue, clipSeconds, fadeMs, marginL, marginR)
	}
	return b.String()
}

// writeASS writes the subtitle document next to the eventual output file.
func writeASS(path string, board *storyboard.Storyboard, cfg *config.Config, clipSeconds float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create subtitle directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(assDocument(board, cfg, clipSeconds)), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}

func writeDialogue(b *strings.Builder, cue storyboard.Cue, clipSeconds float64, fadeMs, marginL, marginR int) {
	end := cue.Start + cue.Duration
	if cue.Duration == 0 {
		end = clipSeconds
	}
	fmt.Fprintf(b, "Dialogue: 0,%s,%s,Caption,,%d,%d,0,,{\\an7\\pos(%.0f,%.0f)\\fs%.0f\\fad(%d,%d)}%s\n",
		assTimestamp(cue.Start),
		assTimestamp(end),
		marginL, marginR,
		cue.X, cue.Y,
		cue.FontSize,
		fadeMs, fadeMs,
		escapeASSText(cue.Text))
}

// assTimestamp formats seconds as H:MM:SS.CC, the ASS event time format.
func assTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	centis := int(seconds*100 + 0.5)
	hours := centis / 360000
	minutes := (centis / 6000) % 60
	secs := (centis / 100) % 60
	cs := centis % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, cs)
}

func escapeASSText(text string) string {
	replacer := strings.NewReplacer(
		"{", "(",
		"}", ")",
		"\r\n", "\\N",
		"\n", "\\N",
	)
	return replacer.Replace(text)
}

var namedASSColors = map[string]string{
	"white":  "&H00FFFFFF",
	"black":  "&H00000000",
	"yellow": "&H0000FFFF",
	"red":    "&H000000FF",
	"green":  "&H0000FF00",
	"blue":   "&H00FF0000",
}

// assColor converts a configured color (named, #RRGGBB, or raw &H value)
// into the ASS &HAABBGGRR form.
func assColor(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return namedASSColors["white"]
	}
	if hex, ok := namedASSColors[strings.ToLower(value)]; ok {
		return hex
	}
	if strings.HasPrefix(value, "&H") || strings.HasPrefix(value, "&h") {
		return value
	}
	if strings.HasPrefix(value, "#") && len(value) == 7 {
		r, g, b := value[1:3], value[3:5], value[5:7]
		return strings.ToUpper("&H00" + b + g + r)
	}
	return namedASSColors["white"]
}

// fontFamily approximates the ASS family name from the configured font file
// stem. libass falls back to its default face when the name does not match.
func fontFamily(fontFile string) string {
	if strings.TrimSpace(fontFile) == "" {
		return "Arial"
	}
	base := filepath.Base(fontFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	if stem == "" {
		return "Arial"
	}
	return stem
}

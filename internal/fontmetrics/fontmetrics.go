package fontmetrics

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size is a measured text block in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Measurer reports the rendered size of text at a font size, wrapped to a
// width. Implementations must be safe for concurrent use.
type Measurer interface {
	Measure(text string, fontSize, wrapWidth float64) (Size, error)
}

// Font measures text using a parsed OpenType font. Faces are cached per
// size.
type Font struct {
	font        *opentype.Font
	lineSpacing float64

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load parses the TTF at path, or the built-in Go Regular face when path is
// empty. lineSpacing is extra vertical space between wrapped lines.
func Load(path string, lineSpacing float64) (*Font, error) {
	data := goregular.TTF
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font file: %w", err)
		}
		data = fileData
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if lineSpacing < 0 {
		lineSpacing = 0
	}
	return &Font{
		font:        parsed,
		lineSpacing: lineSpacing,
		faces:       make(map[float64]font.Face),
	}, nil
}

// Measure word-wraps text to wrapWidth at fontSize and returns the block
// size. A word wider than the wrap width gets its own line and the block
// width grows to hold it; words are never split. Empty text measures zero.
func (f *Font) Measure(text string, fontSize, wrapWidth float64) (Size, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Size{}, nil
	}
	if fontSize <= 0 {
		return Size{}, fmt.Errorf("font size must be positive, got %v", fontSize)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	face, err := f.face(fontSize)
	if err != nil {
		return Size{}, err
	}

	lineHeight := fixedToFloat(face.Metrics().Height)
	spaceWidth := fixedToFloat(font.MeasureString(face, " "))

	var (
		maxWidth  float64
		lineCount int
		lineWidth float64
	)
	flush := func() {
		if lineWidth > maxWidth {
			maxWidth = lineWidth
		}
		lineCount++
		lineWidth = 0
	}
	for _, word := range words {
		wordWidth := fixedToFloat(font.MeasureString(face, word))
		switch {
		case lineWidth == 0:
			lineWidth = wordWidth
		case wrapWidth > 0 && lineWidth+spaceWidth+wordWidth > wrapWidth:
			flush()
			lineWidth = wordWidth
		default:
			lineWidth += spaceWidth + wordWidth
		}
	}
	flush()

	height := float64(lineCount)*lineHeight + float64(lineCount-1)*f.lineSpacing
	return Size{Width: maxWidth, Height: height}, nil
}

func (f *Font) face(size float64) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("build face at size %v: %w", size, err)
	}
	f.faces[size] = face
	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

package layout

import (
	"fmt"
	"math"
)

// Margins are pixel insets from each frame edge.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// SafeArea is the band text may occupy, in frame pixel coordinates.
type SafeArea struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// ComputeSafeArea derives the safe band from the frame size and margins.
// Margins that leave no band are a configuration error.
func ComputeSafeArea(frameWidth, frameHeight float64, m Margins) (SafeArea, error) {
	sa := SafeArea{
		Top:    m.Top,
		Bottom: frameHeight - m.Bottom,
		Left:   m.Left,
		Right:  frameWidth - m.Right,
	}
	if sa.Bottom <= sa.Top {
		return SafeArea{}, fmt.Errorf("safe area has no height: top %.0f, bottom %.0f", sa.Top, sa.Bottom)
	}
	if sa.Right <= sa.Left {
		return SafeArea{}, fmt.Errorf("safe area has no width: left %.0f, right %.0f", sa.Left, sa.Right)
	}
	return sa, nil
}

// FullFrame returns a safe area spanning the whole frame, used when the
// margin scheme is disabled.
func FullFrame(frameWidth, frameHeight float64) SafeArea {
	return SafeArea{Top: 0, Bottom: frameHeight, Left: 0, Right: frameWidth}
}

func (sa SafeArea) Width() float64  { return sa.Right - sa.Left }
func (sa SafeArea) Height() float64 { return sa.Bottom - sa.Top }

// Position places a block of the given size in the band. The top edge lands
// at factor of the band height, then clamps into [Top, Bottom-height] so the
// block never crosses the band; near the bottom the clamp silently overrides
// the requested factor. The block is always horizontally centered.
func (sa SafeArea) Position(blockWidth, blockHeight, factor float64) (x, y float64) {
	y = sa.Top + sa.Height()*factor
	y = math.Min(sa.Bottom-blockHeight, math.Max(sa.Top, y))
	x = sa.Left + (sa.Width()-blockWidth)/2
	return x, y
}

// ShrunkFontSize applies the one-shot overflow correction for a combined
// title+body card whose stacked height exceeds the band. The body font is
// scaled by max(0.8, 1 - 0.5*excess/bandHeight) and floored at minFontSize.
// The caller re-measures once; a card that still overflows is rendered as-is.
func ShrunkFontSize(fontSize, excess, bandHeight, minFontSize float64) float64 {
	if excess <= 0 || bandHeight <= 0 {
		return fontSize
	}
	factor := math.Max(0.8, 1.0-0.5*(excess/bandHeight))
	shrunk := fontSize * factor
	if shrunk < minFontSize {
		return minFontSize
	}
	return shrunk
}

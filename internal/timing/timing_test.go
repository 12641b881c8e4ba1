package timing

import (
	"math"
	"strings"
	"testing"
)

var storyPace = Options{WordsPerMinute: 180, MinSeconds: 1.0, MaxSeconds: 8.0}

func TestEstimateDurationClampsToFloor(t *testing.T) {
	// 3 words at 180 wpm is exactly 1.0s, the floor.
	got := EstimateDuration("one two three", storyPace)
	if got != 1.0 {
		t.Fatalf("EstimateDuration = %v, want 1.0", got)
	}
}

func TestEstimateDurationClampsToCeiling(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := EstimateDuration(long, storyPace)
	if got != 8.0 {
		t.Fatalf("EstimateDuration = %v, want 8.0", got)
	}
}

func TestEstimateDurationMidRange(t *testing.T) {
	// 9 words at 180 wpm = 3.0s.
	got := EstimateDuration("a b c d e f g h i", storyPace)
	if math.Abs(got-3.0) > 1e-9 {
		t.Fatalf("EstimateDuration = %v, want 3.0", got)
	}
}

func TestEstimateDurationEmptyText(t *testing.T) {
	if got := EstimateDuration("", storyPace); got != storyPace.MinSeconds {
		t.Fatalf("EstimateDuration(\"\") = %v, want floor", got)
	}
}

func TestEstimateDurationAlwaysInBounds(t *testing.T) {
	for words := 0; words <= 200; words += 7 {
		text := strings.TrimSpace(strings.Repeat("w ", words))
		got := EstimateDuration(text, storyPace)
		if got < storyPace.MinSeconds || got > storyPace.MaxSeconds {
			t.Fatalf("duration %v out of bounds for %d words", got, words)
		}
	}
}

func TestStartTimesWithLeadIn(t *testing.T) {
	durations := []float64{2.0, 3.5, 1.0}
	got := StartTimes(durations, 3.0)
	want := []float64{3.0, 5.0, 8.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("StartTimes[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStartTimesWithoutLeadIn(t *testing.T) {
	got := StartTimes([]float64{1.5, 2.5}, 0)
	if got[0] != 0 || got[1] != 1.5 {
		t.Fatalf("StartTimes = %v", got)
	}
}

func TestTotal(t *testing.T) {
	if got := Total([]float64{1, 2, 3}, 3); got != 9 {
		t.Fatalf("Total = %v, want 9", got)
	}
	if got := Total(nil, 0); got != 0 {
		t.Fatalf("Total(nil) = %v, want 0", got)
	}
}

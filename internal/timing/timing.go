package timing

import "strings"

// Options holds the pacing knobs for duration estimation.
type Options struct {
	WordsPerMinute float64
	MinSeconds     float64
	MaxSeconds     float64
}

// EstimateDuration computes the display duration in seconds for a text
// segment: word count over reading speed, clamped to [MinSeconds,
// MaxSeconds]. Zero words yields MinSeconds.
func EstimateDuration(text string, opts Options) float64 {
	words := float64(len(strings.Fields(text)))
	raw := words / opts.WordsPerMinute * 60
	return clamp(raw, opts.MinSeconds, opts.MaxSeconds)
}

// Durations estimates a duration for every segment in order.
func Durations(segments []string, opts Options) []float64 {
	out := make([]float64, len(segments))
	for i, seg := range segments {
		out[i] = EstimateDuration(seg, opts)
	}
	return out
}

// StartTimes returns the cumulative start time of each segment: the running
// sum of prior durations, offset by a lead-in (a title card shown before the
// first segment, or zero).
func StartTimes(durations []float64, leadIn float64) []float64 {
	out := make([]float64, len(durations))
	at := leadIn
	for i, d := range durations {
		out[i] = at
		at += d
	}
	return out
}

// Total returns the timeline length: lead-in plus all segment durations.
func Total(durations []float64, leadIn float64) float64 {
	total := leadIn
	for _, d := range durations {
		total += d
	}
	return total
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

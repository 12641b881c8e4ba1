// Package timing assigns display durations to caption segments from their
// word count and a reading-speed constant, and builds cumulative start times
// for a storyboard timeline.
package timing

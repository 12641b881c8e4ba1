// Package storyboard turns a content record into render-ready caption cues:
// ordered, timed, positioned text blocks inside the frame's safe area. It
// composes the segmenter, the duration estimator, and the safe-area
// positioner, with text sizes supplied by a font-metrics collaborator.
package storyboard

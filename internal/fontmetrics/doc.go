// Package fontmetrics measures wrapped text blocks for the layout engine.
// It renders nothing; it loads an OpenType face (a configured TTF file or
// the built-in Go Regular), word-wraps text greedily to a wrap width, and
// reports the resulting block width and height in pixels.
package fontmetrics

// Package content reads the CSV content tables that drive a batch run:
// stories.csv for narrated story videos and hooks.csv for hook+CTA reels.
// Field normalization happens here, once: literal \n escapes in story text
// become real newlines and the show_title tri-state string becomes an
// optional bool.
package content

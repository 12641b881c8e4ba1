// Package planner is the first pipeline stage: it builds the timed,
// positioned storyboard for a queue item and picks the media files the
// later stages will use.
package planner

// Package organizer is the final pipeline stage: it moves rendered videos
// into the library under a descriptive generated filename, appends the
// video-list table, and marks reel hooks as used.
package organizer

// Package assets picks background videos, music tracks, and hook/CTA clips
// from the configured asset folders. Themed subfolders are preferred when
// they exist and contain usable files; otherwise selection falls back to the
// folder root. Sequential selection rotates through each pool using a
// file-locked tracker so concurrent batch runs never hand out the same clip
// twice in a row.
package assets

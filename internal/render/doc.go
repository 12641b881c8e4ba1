// Package render turns a storyboard plus selected media into a finished
// video file. Captions are burned in from a generated ASS subtitle file
// whose dialogue lines carry absolute positions, and ffmpeg does the
// composition: background loop and trim, center-crop and scale to the
// output frame, a contrast overlay box, and the music/narration mix.
package render

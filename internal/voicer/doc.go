// Package voicer is the narration stage: it synthesizes spoken audio for
// reel items. Stories are caption-only and pass through, as do all items
// when synthesis is disabled.
package voicer

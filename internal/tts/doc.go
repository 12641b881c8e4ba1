// Package tts synthesizes narration audio for reels through an
// ElevenLabs-compatible HTTP API. When synthesis is disabled in
// configuration a noop synthesizer is returned and reels render silent.
package tts

package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Config controls how story text is partitioned.
type Config struct {
	// MaxChars is the character budget per segment.
	MaxChars int
	// MinLength marks paragraphs shorter than this for coalescing with a
	// neighbor. Zero disables coalescing.
	MinLength int
	// OneSentencePerSegment makes each sentence its own segment.
	OneSentencePerSegment bool
	// UseParagraphs splits on newline breaks when the text has any.
	UseParagraphs bool
}

// strategy is the common shape of all splitting passes: text in, ordered
// non-empty segments out.
type strategy func(text string) []string

// Split partitions text into ordered, trimmed, non-empty segments.
// Whitespace-only input yields nil. Calling twice with the same inputs
// yields identical output.
func Split(text string, cfg Config) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return selectStrategy(trimmed, cfg)(trimmed)
}

func selectStrategy(text string, cfg Config) strategy {
	if cfg.UseParagraphs && strings.ContainsRune(text, '\n') {
		return byParagraphs(cfg)
	}
	return fallbackStrategy(cfg)
}

// fallbackStrategy picks the splitter used when paragraph splitting does not
// apply, and for re-splitting oversized paragraphs.
func fallbackStrategy(cfg Config) strategy {
	if cfg.OneSentencePerSegment {
		return bySentences(cfg.MaxChars)
	}
	return byBudget(cfg.MaxChars)
}

// byParagraphs splits on runs of newlines, coalesces short paragraphs, and
// re-splits any paragraph still over budget.
func byParagraphs(cfg Config) strategy {
	resplit := fallbackStrategy(cfg)
	return func(text string) []string {
		paragraphs := splitParagraphs(text)
		paragraphs = coalesceShort(paragraphs, cfg.MinLength)

		var out []string
		for _, paragraph := range paragraphs {
			if runeLen(paragraph) <= cfg.MaxChars {
				out = append(out, paragraph)
				continue
			}
			out = append(out, resplit(paragraph)...)
		}
		return out
	}
}

func splitParagraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// coalesceShort merges paragraphs below minLength into a neighbor. The
// opening paragraph always stands alone; it reads as the lead-in card. From
// the second paragraph on, a short paragraph is prepended to the next one,
// and a short closing paragraph joins the previous emitted segment.
func coalesceShort(paragraphs []string, minLength int) []string {
	if minLength <= 0 || len(paragraphs) < 2 {
		return paragraphs
	}

	out := []string{paragraphs[0]}
	carry := ""
	for _, paragraph := range paragraphs[1:] {
		if carry != "" {
			paragraph = carry + " " + paragraph
			carry = ""
		}
		if runeLen(paragraph) < minLength {
			carry = paragraph
			continue
		}
		out = append(out, paragraph)
	}
	if carry != "" {
		// Short closing paragraph with nothing left to absorb it.
		out[len(out)-1] = out[len(out)-1] + " " + carry
	}
	return out
}

// bySentences makes each sentence a segment, re-splitting any sentence over
// budget by word.
func bySentences(maxChars int) strategy {
	budget := byBudget(maxChars)
	return func(text string) []string {
		var out []string
		for _, sentence := range splitSentences(text) {
			if runeLen(sentence) <= maxChars {
				out = append(out, sentence)
				continue
			}
			out = append(out, budget(sentence)...)
		}
		return out
	}
}

// splitSentences breaks text after '.', '!', or '?' when followed by
// whitespace.
func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			out = append(out, sentence)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// byBudget greedily packs whitespace-delimited words up to maxChars. A word
// longer than the budget becomes its own oversized segment; words are never
// split.
func byBudget(maxChars int) strategy {
	return func(text string) []string {
		var out []string
		current := ""
		for _, word := range strings.Fields(text) {
			if current == "" {
				current = word
				continue
			}
			if runeLen(current)+1+runeLen(word) <= maxChars {
				current = current + " " + word
				continue
			}
			out = append(out, current)
			current = word
		}
		if current != "" {
			out = append(out, current)
		}
		return out
	}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

package segment

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitEmptyInput(t *testing.T) {
	cfg := Config{MaxChars: 200}
	for _, input := range []string{"", "   ", "\n\n\t"} {
		if got := Split(input, cfg); got != nil {
			t.Fatalf("Split(%q) = %v, want nil", input, got)
		}
	}
}

func TestSplitParagraphCoalescing(t *testing.T) {
	cfg := Config{MaxChars: 200, MinLength: 20, UseParagraphs: true}
	input := "Hello world.\nThis is short.\nFinal paragraph here to close."

	got := Split(input, cfg)
	want := []string{
		"Hello world.",
		"This is short. Final paragraph here to close.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitShortClosingParagraphMergesBackward(t *testing.T) {
	cfg := Config{MaxChars: 200, MinLength: 20, UseParagraphs: true}
	input := "The first paragraph is long enough.\nAnother full length paragraph.\nThe end."

	got := Split(input, cfg)
	want := []string{
		"The first paragraph is long enough.",
		"Another full length paragraph. The end.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitConsecutiveBreaksCollapse(t *testing.T) {
	cfg := Config{MaxChars: 200, UseParagraphs: true}
	input := "First paragraph.\n\n\nSecond paragraph."

	got := Split(input, cfg)
	want := []string{"First paragraph.", "Second paragraph."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitOversizedParagraphResplit(t *testing.T) {
	cfg := Config{MaxChars: 30, UseParagraphs: true}
	input := "Short lead.\nthis paragraph keeps going well past the configured budget limit"

	got := Split(input, cfg)
	if len(got) < 3 {
		t.Fatalf("expected oversized paragraph to be re-split, got %q", got)
	}
	if got[0] != "Short lead." {
		t.Fatalf("lead paragraph altered: %q", got[0])
	}
	for _, seg := range got {
		if utf8.RuneCountInString(seg) > cfg.MaxChars {
			t.Fatalf("segment over budget: %q", seg)
		}
	}
}

func TestSplitSentenceMode(t *testing.T) {
	cfg := Config{MaxChars: 200, OneSentencePerSegment: true}
	input := "First sentence here. Second one! Third?"

	got := Split(input, cfg)
	want := []string{"First sentence here.", "Second one!", "Third?"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitSentenceModeDoesNotBreakOnInternalPeriods(t *testing.T) {
	cfg := Config{MaxChars: 200, OneSentencePerSegment: true}
	input := "Version 1.5 shipped today. Everyone celebrated."

	got := Split(input, cfg)
	want := []string{"Version 1.5 shipped today.", "Everyone celebrated."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitBudgetExactBoundary(t *testing.T) {
	text := strings.Repeat("a", 20)
	cfg := Config{MaxChars: 20}

	if got := Split(text, cfg); !reflect.DeepEqual(got, []string{text}) {
		t.Fatalf("exact-budget text should stay whole, got %q", got)
	}

	over := text + " b"
	got := Split(over, cfg)
	if len(got) != 2 {
		t.Fatalf("one char over budget should split, got %q", got)
	}
}

func TestSplitBudgetNeverBreaksWords(t *testing.T) {
	cfg := Config{MaxChars: 10}
	input := "tiny supercalifragilistic tail"

	got := Split(input, cfg)
	want := []string{"tiny", "supercalifragilistic", "tail"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitPreservesContent(t *testing.T) {
	inputs := []string{
		"One two three four five six seven eight nine ten.",
		"Lead paragraph text goes here.\nFollow-up paragraph with more words in it.\nTail.",
		"Solo sentence. Another sentence! A third one?",
	}
	configs := []Config{
		{MaxChars: 15},
		{MaxChars: 25, MinLength: 10, UseParagraphs: true},
		{MaxChars: 200, OneSentencePerSegment: true},
	}
	for _, input := range inputs {
		for _, cfg := range configs {
			segments := Split(input, cfg)
			joined := strings.Join(strings.Fields(strings.Join(segments, " ")), " ")
			original := strings.Join(strings.Fields(input), " ")
			if joined != original {
				t.Fatalf("content not preserved for cfg %+v:\n in:  %q\n out: %q", cfg, original, joined)
			}
			for _, seg := range segments {
				if strings.TrimSpace(seg) == "" {
					t.Fatalf("empty segment emitted for %q", input)
				}
				if seg != strings.TrimSpace(seg) {
					t.Fatalf("untrimmed segment %q", seg)
				}
			}
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	cfg := Config{MaxChars: 25, MinLength: 10, UseParagraphs: true}
	input := "A lead-in line.\nshort\nA much longer closing paragraph for the story."

	first := Split(input, cfg)
	second := Split(input, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Split not deterministic: %q vs %q", first, second)
	}
}

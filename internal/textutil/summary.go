package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CamelSummary condenses free text into a camelCase token suitable for a
// filename, keeping at most maxWords words. Punctuation is stripped and the
// leading word is lowercased: "My friend's AMAZING secret!" with maxWords 3
// becomes "myFriendsAmazing".
func CamelSummary(text string, maxWords int) string {
	if maxWords <= 0 {
		return ""
	}
	words := strings.Fields(text)
	var parts []string
	for _, word := range words {
		cleaned := stripNonAlnum(word)
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
		if len(parts) == maxWords {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, part := range parts {
		if i == 0 {
			b.WriteString(strings.ToLower(part))
			continue
		}
		b.WriteString(titleCaser.String(strings.ToLower(part)))
	}
	return b.String()
}

func stripNonAlnum(word string) string {
	var b strings.Builder
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

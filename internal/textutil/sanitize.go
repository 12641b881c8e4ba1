package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// NormalizeEscapedNewlines converts literal "\n" two-character sequences into
// real newlines. Content tables store multi-paragraph story text in a single
// CSV field using the escaped form.
func NormalizeEscapedNewlines(text string) string {
	return strings.ReplaceAll(text, `\n`, "\n")
}

// CollapseWhitespace trims the string and folds runs of whitespace into a
// single space.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

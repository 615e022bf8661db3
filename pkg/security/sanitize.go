// Package security cleans user supplied text and filenames before they reach the services.
package security

import (
	"regexp"
	"strings"
	"unicode"
)

const maxFilenameLength = 255

var (
	htmlCommentPattern = regexp.MustCompile(`<!--[\s\S]*?-->`)
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// SanitizeString trims s and drops null bytes and control characters other than newline and tab
func SanitizeString(s string) string {
	return strings.TrimSpace(removeControlCharacters(s))
}

// StripHTMLTags removes HTML comments and tags, keeping the text between them
func StripHTMLTags(s string) string {
	s = htmlCommentPattern.ReplaceAllString(s, "")
	return htmlTagPattern.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses every whitespace run into one space and trims the ends
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// TruncateString cuts s to at most maxLength runes
func TruncateString(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// SanitizeFilename strips path components and replaces anything outside [A-Za-z0-9._-] with '_'
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return TruncateString(b.String(), maxFilenameLength)
}

// CleanMessage prepares free text for intent matching
func CleanMessage(s string, maxLength int) string {
	return TruncateString(NormalizeWhitespace(StripHTMLTags(SanitizeString(s))), maxLength)
}

func removeControlCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

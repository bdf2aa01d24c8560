// Package mask hides usernames and URLs behind runs of the block glyph.
//
// Masking is length-preserving: every hidden code point becomes exactly one
// glyph, so the masked text has the same rune count as the input.
package mask

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/redactbot/pkg/redactbot/boundary"
)

// Glyph is the full block character used for every redaction.
const Glyph = '█'

var (
	usernamePattern = regexp.MustCompile(`@[\p{L}\p{M}\p{N}_]+`)
	// Scheme prefix plus a run of non-whitespace. Go's \s is ASCII only, so
	// Unicode separators are excluded explicitly.
	urlPattern = regexp.MustCompile(`(https?://)([^\s\v\p{Z}\x{1c}-\x{1f}\x{85}]+)`)
)

// Run returns n glyphs.
func Run(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(Glyph), n)
}

// Cover returns a glyph run as long as s.
func Cover(s string) string {
	return Run(utf8.RuneCountInString(s))
}

// Contains reports whether s holds at least one glyph.
func Contains(s string) bool {
	return strings.ContainsRune(s, Glyph)
}

// Usernames masks every @handle, keeping the leading @.
func Usernames(text string) string {
	return usernamePattern.ReplaceAllStringFunc(text, func(m string) string {
		return "@" + Cover(m[1:])
	})
}

// URLs masks the part of every http(s) URL after the scheme. The scheme must
// start on a word boundary.
func URLs(text string) string {
	return boundary.ReplaceFunc(text, urlPattern, boundary.Start, func(groups []string) string {
		return groups[1] + Cover(groups[2])
	})
}

// Mask applies Usernames and then URLs.
func Mask(text string) string {
	return URLs(Usernames(text))
}

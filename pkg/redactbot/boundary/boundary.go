// Package boundary implements whole-word matching over Unicode text.
//
// Go's regexp \b only understands ASCII word characters, so matches are
// found with a plain pattern and the word boundaries are checked here,
// rune by rune. A word character is a letter, a combining mark, a number or
// an underscore; everything else (including the block glyph used for
// redaction) is not.
package boundary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Edge selects which ends of a match must sit on a word boundary.
type Edge uint8

const (
	Start Edge = 1 << iota
	End

	Both = Start | End
)

// IsWordRune reports whether r counts as a word character.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// IsBoundary reports whether byte offset i of s is a word boundary: exactly
// one of the runes on either side is a word character. The edges of s count
// as non-word.
func IsBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = IsWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = IsWordRune(r)
	}
	return before != after
}

// ReplaceFunc rewrites every match of re in s whose requested edges sit on a
// word boundary. repl receives the submatches of the accepted match.
//
// The scan is leftmost-first. A candidate rejected by the boundary check is
// retried one rune further on; an accepted match resumes the scan at its end.
func ReplaceFunc(s string, re *regexp.Regexp, edges Edge, repl func(groups []string) string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	last, pos := 0, 0
	for pos <= len(s) {
		loc := re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if end == start || !accept(s, start, end, edges) {
			if start >= len(s) {
				break
			}
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + size
			continue
		}

		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = s[pos+loc[2*g] : pos+loc[2*g+1]]
			}
		}

		b.WriteString(s[last:start])
		b.WriteString(repl(groups))
		last, pos = end, end
	}

	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func accept(s string, start, end int, edges Edge) bool {
	if edges&Start != 0 && !IsBoundary(s, start) {
		return false
	}
	if edges&End != 0 && !IsBoundary(s, end) {
		return false
	}
	return true
}

// Literal compiles a pattern matching lit verbatim, optionally ignoring case.
func Literal(lit string, foldCase bool) *regexp.Regexp {
	expr := regexp.QuoteMeta(lit)
	if foldCase {
		expr = "(?i)" + expr
	}
	// QuoteMeta output is always a valid expression.
	return regexp.MustCompile(expr)
}

// ReplaceWord rewrites every whole-word occurrence of word in s with the
// result of repl, which receives the matched text. An empty word matches
// nothing.
func ReplaceWord(s, word string, foldCase bool, repl func(match string) string) string {
	if word == "" {
		return s
	}
	return ReplaceFunc(s, Literal(word, foldCase), Both, func(groups []string) string {
		return repl(groups[0])
	})
}

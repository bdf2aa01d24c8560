package analyze

import (
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/redactbot/pkg/redactbot/mask"
)

// Token is a word found in a text, with its byte offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenizer splits text into word tokens. Unlike an indexing tokenizer it
// keeps case, stopwords and single letters: callers match tokens back
// against the source text.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the maximal runs of word runes in text. Hyphens and
// apostrophes are kept when they sit between two word runes, so
// "state-of-the-art" and "don't" stay whole.
func (t *Tokenizer) Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && isJoiner(r) && tokenRuneAt(text, i+utf8.RuneLen(r)) {
			continue
		}
		if start >= 0 {
			tokens = append(tokens, Token{Text: text[start:i], Start: start, End: i})
			start = -1
		}
	}

	// Don't forget the last token
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Start: start, End: len(text)})
	}

	return tokens
}

// Words returns just the token strings.
func (t *Tokenizer) Words(text string) []string {
	tokens := t.Tokenize(text)
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return words
}

// isTokenRune accepts letters, digits, combining marks, underscores and the
// redaction glyph, so a redacted word still reads as one token.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) ||
		r == '_' || r == mask.Glyph
}

func isJoiner(r rune) bool {
	return r == '-' || r == '\'' || r == '’'
}

func tokenRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isTokenRune(r)
}

// isNumericOnly returns true if the token contains only digits and joiners.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && !isJoiner(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Package analyze finds the words and noun phrases of a short text.
//
// The redaction and jiggling engines only depend on the Analyzer interface.
// Basic is a dependency-free implementation built from a tokenizer, a
// stoplist of function words and an optional phrase dictionary:
//
//	an := analyze.New(stoplist.Default(), nil)
//	an.NounPhrases("This is a weird cat video") // ["weird cat video"]
package analyze

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/redactbot/pkg/redactbot/mask"
	"github.com/cognicore/redactbot/pkg/redactbot/stoplist"
)

// Analyzer returns the word tokens and noun phrases of a text, in order.
// Implementations must be deterministic for a given text.
type Analyzer interface {
	Words(text string) ([]string, error)
	NounPhrases(text string) ([]string, error)
}

// Basic is a heuristic Analyzer.
//
// A noun phrase is found inside a run of tokens separated only by
// whitespace. Within a run, dictionary phrases win (longest first);
// otherwise two or more consecutive content words form a phrase, and a
// single capitalized content word that does not open a sentence counts as a
// proper noun. Phrases are returned lowercased, exactly as spelled in the
// text.
type Basic struct {
	tokenizer *Tokenizer
	stops     *stoplist.Manager
	phrases   *PhraseDict
}

// New creates a Basic analyzer. A nil stoplist selects stoplist.Default();
// a nil dictionary disables dictionary matching.
func New(stops *stoplist.Manager, phrases *PhraseDict) *Basic {
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Basic{
		tokenizer: NewTokenizer(),
		stops:     stops,
		phrases:   phrases,
	}
}

// Words implements Analyzer.
func (a *Basic) Words(text string) ([]string, error) {
	return a.tokenizer.Words(text), nil
}

// NounPhrases implements Analyzer.
func (a *Basic) NounPhrases(text string) ([]string, error) {
	var phrases []string
	for _, run := range a.runs(text) {
		phrases = append(phrases, a.chunk(text, run)...)
	}
	return phrases, nil
}

// runToken is a token plus whether it opens a sentence.
type runToken struct {
	Token
	sentenceStart bool
}

// runs groups tokens separated by nothing but whitespace. Handles and
// hashtags break a run and are dropped.
func (a *Basic) runs(text string) [][]runToken {
	var (
		runs    [][]runToken
		current []runToken
	)
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	prevEnd := 0
	for i, tok := range a.tokenizer.Tokenize(text) {
		sep := text[prevEnd:tok.Start]
		prevEnd = tok.End

		if isHandle(text, tok) {
			flush()
			continue
		}
		if strings.TrimSpace(sep) != "" {
			flush()
		}
		current = append(current, runToken{
			Token:         tok,
			sentenceStart: i == 0 || strings.ContainsAny(sep, ".!?…\n"),
		})
	}
	flush()

	return runs
}

// chunk extracts the noun phrases of a single run.
func (a *Basic) chunk(text string, run []runToken) []string {
	words := make([]string, len(run))
	for i, tok := range run {
		words[i] = tok.Text
	}

	var phrases []string
	emit := func(i, j int) {
		phrases = append(phrases, strings.ToLower(text[run[i].Start:run[j].End]))
	}

	i := 0
	for i < len(run) {
		if n := a.phrases.Match(words[i:]); n > 0 {
			emit(i, i+n-1)
			i += n
			continue
		}
		if !a.isContent(words[i]) {
			i++
			continue
		}

		j := i
		for j+1 < len(run) && a.isContent(words[j+1]) && a.phrases.Match(words[j+1:]) == 0 {
			j++
		}
		switch {
		case j > i:
			emit(i, j)
		case isCapitalized(words[i]) && !run[i].sentenceStart:
			emit(i, i)
		}
		i = j + 1
	}

	return phrases
}

// isContent reports whether a token can be part of a heuristic noun phrase.
func (a *Basic) isContent(word string) bool {
	if !hasLetter(word) || isNumericOnly(word) || mask.Contains(word) {
		return false
	}
	return !a.stops.IsStop(word)
}

func isHandle(text string, tok Token) bool {
	if tok.Start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:tok.Start])
	return r == '@' || r == '#'
}

func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// Package redact masks a random share of the words and noun phrases of a
// text with block glyphs.
package redact

import (
	"log/slog"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/boundary"
	"github.com/cognicore/redactbot/pkg/redactbot/mask"
	"github.com/cognicore/redactbot/pkg/redactbot/sample"
)

// Redactor replaces sampled words and noun phrases with glyph runs of the
// same length. It keeps no state between calls.
type Redactor struct {
	analyzer analyze.Analyzer
	rand     sample.Source
	log      *slog.Logger
}

// New creates a Redactor. A nil logger discards.
func New(analyzer analyze.Analyzer, rand sample.Source, log *slog.Logger) *Redactor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Redactor{analyzer: analyzer, rand: rand, log: log}
}

// Redact masks usernames and URLs, then redacts every occurrence of
// floor(wordRatio*len(words)) sampled words and then of
// floor(nounRatio*len(nouns)) sampled noun phrases. Words and phrases come
// from the unmodified text; matching ignores case and respects word
// boundaries. The result has the same rune count as text.
//
// Ratios are not validated here.
func (r *Redactor) Redact(text string, wordRatio, nounRatio float64) (string, error) {
	words, err := r.analyzer.Words(text)
	if err != nil {
		return "", err
	}
	nouns, err := r.analyzer.NounPhrases(text)
	if err != nil {
		return "", err
	}

	out := mask.Mask(text)

	selectedWords := sample.Sample(r.rand, words, wordRatio)
	for _, w := range selectedWords {
		out = Apply(out, w)
	}

	selectedNouns := sample.Sample(r.rand, nouns, nounRatio)
	for _, n := range selectedNouns {
		out = Apply(out, n)
	}

	r.log.Debug("redacted",
		slog.Int("words", len(words)),
		slog.Any("selected_words", selectedWords),
		slog.Int("nouns", len(nouns)),
		slog.Any("selected_nouns", selectedNouns))

	return out, nil
}

// Apply replaces every case-insensitive whole-word occurrence of phrase in
// text with glyphs. Already redacted text never matches again: glyphs are
// not word characters.
func Apply(text, phrase string) string {
	return boundary.ReplaceWord(text, phrase, true, mask.Cover)
}

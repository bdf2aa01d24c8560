// Package jiggle swaps a random share of the visible words of a text for
// synonyms.
package jiggle

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/boundary"
	"github.com/cognicore/redactbot/pkg/redactbot/mask"
	"github.com/cognicore/redactbot/pkg/redactbot/sample"
)

// Resolver looks up the synonyms of a word. The result may include the word
// itself and may repeat entries.
type Resolver interface {
	SynonymsOf(word string) ([]string, error)
}

// Jiggler replaces sampled words with randomly chosen synonyms.
type Jiggler struct {
	analyzer analyze.Analyzer
	resolver Resolver
	rand     sample.Source
	log      *slog.Logger
}

// New creates a Jiggler. A nil logger discards.
func New(analyzer analyze.Analyzer, resolver Resolver, rand sample.Source, log *slog.Logger) *Jiggler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Jiggler{analyzer: analyzer, resolver: resolver, rand: rand, log: log}
}

// Jiggle samples floor(rate*n) of the n unredacted words of text and, one
// after the other, replaces every case-sensitive whole-word occurrence of
// each with a random synonym other than itself. Words without such a synonym
// are left alone. The output length may differ from the input.
func (j *Jiggler) Jiggle(text string, rate float64) (string, error) {
	words, err := j.analyzer.Words(text)
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, w := range words {
		if mask.Contains(w) || strings.ContainsFunc(w, unicode.IsSpace) {
			continue
		}
		candidates = append(candidates, w)
	}

	out := text
	swapped := 0
	for _, w := range sample.Sample(j.rand, candidates, rate) {
		syns, err := j.resolver.SynonymsOf(w)
		if err != nil {
			return "", err
		}
		alts := alternatives(w, syns)
		if len(alts) == 0 {
			continue
		}
		alt := sample.Choice(j.rand, alts)
		out = boundary.ReplaceWord(out, w, false, func(string) string { return alt })
		j.log.Debug("jiggled", slog.String("word", w), slog.String("synonym", alt))
		swapped++
	}

	j.log.Debug("jiggle done",
		slog.Int("candidates", len(candidates)),
		slog.Int("swapped", swapped))

	return out, nil
}

// alternatives dedupes syns in first-seen order and drops word itself.
func alternatives(word string, syns []string) []string {
	var out []string
	seen := make(map[string]bool, len(syns))
	for _, s := range syns {
		if s == word || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

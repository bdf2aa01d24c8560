// Package redactbot turns a short social-media text into a partly redacted,
// partly paraphrased version of itself.
//
// The pipeline masks usernames and URLs, blacks out a random share of the
// words and noun phrases with █ glyphs, and finally swaps a random share of
// the remaining words for synonyms:
//
//	eng := redactbot.New(redactbot.Options{Synonyms: th})
//	res, err := eng.Transform("This is a weird cat video", redactbot.DefaultRatios())
package redactbot

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
	"github.com/cognicore/redactbot/pkg/redactbot/jiggle"
	"github.com/cognicore/redactbot/pkg/redactbot/redact"
	"github.com/cognicore/redactbot/pkg/redactbot/sample"
	"github.com/cognicore/redactbot/pkg/redactbot/thesaurus"
)

// Engine is the redaction and jiggling facade.
//
// An Engine is safe for concurrent use only if its random source and
// capabilities are. The default random source is not.
type Engine struct {
	redactor *redact.Redactor
	jiggler  *jiggle.Jiggler
	log      *slog.Logger
}

// Options configures an Engine. Zero fields get defaults: the Basic analyzer
// with the built-in stoplist, an empty thesaurus, a randomly seeded PCG
// source and a discarding logger.
type Options struct {
	Analyzer analyze.Analyzer
	Synonyms jiggle.Resolver
	Rand     sample.Source
	Logger   *slog.Logger
}

// Ratios holds the sampling fractions, each in [0, 1].
type Ratios struct {
	Word   float64 // share of words to redact
	Noun   float64 // share of noun phrases to redact
	Jiggle float64 // share of remaining words to swap for synonyms
}

// DefaultRatios returns the ratios the bot ships with.
func DefaultRatios() Ratios {
	return Ratios{Word: 0.3, Noun: 0.7, Jiggle: 0.2}
}

// Validate reports an ErrInvalidConfig error when a ratio is outside [0, 1].
func (r Ratios) Validate() error {
	if err := checkRatio("word ratio", r.Word); err != nil {
		return err
	}
	if err := checkRatio("noun ratio", r.Noun); err != nil {
		return err
	}
	return checkRatio("jiggle rate", r.Jiggle)
}

func checkRatio(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s %v not in [0,1]", internalerr.ErrInvalidConfig, name, v)
	}
	return nil
}

// Result holds every stage of a transformation.
type Result struct {
	Original string
	Redacted string
	Jiggled  string
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.Analyzer == nil {
		opts.Analyzer = analyze.New(nil, nil)
	}
	if opts.Synonyms == nil {
		opts.Synonyms = thesaurus.New()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		redactor: redact.New(opts.Analyzer, opts.Rand, opts.Logger),
		jiggler:  jiggle.New(opts.Analyzer, opts.Synonyms, opts.Rand, opts.Logger),
		log:      opts.Logger,
	}
}

// Redact masks usernames and URLs and redacts sampled words and noun
// phrases. The result has the same length as text.
func (e *Engine) Redact(text string, wordRatio, nounRatio float64) (string, error) {
	if err := checkRatio("word ratio", wordRatio); err != nil {
		return "", err
	}
	if err := checkRatio("noun ratio", nounRatio); err != nil {
		return "", err
	}
	return e.redactor.Redact(text, wordRatio, nounRatio)
}

// Jiggle swaps sampled unredacted words for synonyms.
func (e *Engine) Jiggle(text string, jiggleRate float64) (string, error) {
	if err := checkRatio("jiggle rate", jiggleRate); err != nil {
		return "", err
	}
	return e.jiggler.Jiggle(text, jiggleRate)
}

// Transform redacts text and then jiggles the redacted version.
func (e *Engine) Transform(text string, r Ratios) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}

	redacted, err := e.redactor.Redact(text, r.Word, r.Noun)
	if err != nil {
		return Result{}, err
	}
	jiggled, err := e.jiggler.Jiggle(redacted, r.Jiggle)
	if err != nil {
		return Result{}, err
	}

	e.log.Debug("transformed",
		slog.String("original", text),
		slog.String("redacted", redacted),
		slog.String("jiggled", jiggled))

	return Result{Original: text, Redacted: redacted, Jiggled: jiggled}, nil
}

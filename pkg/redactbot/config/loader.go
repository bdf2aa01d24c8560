package config

import (
	"fmt"
	"log/slog"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/stoplist"
	"github.com/cognicore/redactbot/pkg/redactbot/thesaurus"
)

// Loader loads the language resources and constructs components
type Loader struct {
	StoplistPath  string
	PhrasesPath   string
	ThesaurusPath string
}

// Components holds the loaded language components
type Components struct {
	Analyzer  *analyze.Basic
	Thesaurus *thesaurus.Thesaurus
	Stoplist  *stoplist.Manager
	Phrases   *analyze.PhraseDict // nil without a dictionary
}

// LogValue summarizes the loaded resources for a startup log line.
func (c *Components) LogValue() slog.Value {
	ts := c.Thesaurus.Stats()
	return slog.GroupValue(
		slog.Int("stopwords", c.Stoplist.Len()),
		slog.Int("phrases", c.Phrases.Len()),
		slog.Int("synsets", ts.Synsets),
		slog.Int("synonyms", ts.Words),
	)
}

// Loader returns a Loader for the resources named in the config.
func (c *Config) Loader() *Loader {
	return &Loader{
		StoplistPath:  c.Stoplist,
		PhrasesPath:   c.Phrases,
		ThesaurusPath: c.Thesaurus,
	}
}

// Load reads every configured file. Missing paths fall back to the built-in
// stoplist, no phrase dictionary and an empty thesaurus.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	stops := stoplist.Default()
	if l.StoplistPath != "" {
		var err error
		if stops, err = LoadStoplist(l.StoplistPath); err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	}

	var phrases *analyze.PhraseDict
	if l.PhrasesPath != "" {
		entries, err := LoadDict(l.PhrasesPath)
		if err != nil {
			return nil, fmt.Errorf("load phrases: %w", err)
		}
		phrases = analyze.NewPhraseDict(entries)
	}
	comp.Stoplist = stops
	comp.Phrases = phrases
	comp.Analyzer = analyze.New(stops, phrases)

	if l.ThesaurusPath != "" {
		th, err := thesaurus.LoadFromYAML(l.ThesaurusPath)
		if err != nil {
			return nil, fmt.Errorf("load thesaurus: %w", err)
		}
		comp.Thesaurus = th
	} else {
		comp.Thesaurus = thesaurus.New()
	}

	return comp, nil
}

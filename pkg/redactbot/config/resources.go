package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/stoplist"
)

// LoadStoplist reads a YAML file with a top-level terms list and returns it
// as a stoplist. The built-in English list is not merged in.
func LoadStoplist(path string) (*stoplist.Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stoplist.NewManager(doc.Terms), nil
}

// LoadDict reads a phrase dictionary, one entry per line:
//
//	canonical|variant...|category
//
// Blank lines, # comments, lines without a category and lines with an empty
// canonical form are skipped.
func LoadDict(path string) ([]analyze.PhraseEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []analyze.PhraseEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		last := len(fields) - 1
		if last < 1 || fields[0] == "" {
			continue
		}

		entries = append(entries, analyze.PhraseEntry{
			Canonical: fields[0],
			Variants:  fields[1:last],
			Category:  fields[last],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

package thesaurus

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Thesaurus stores synsets: groups of words that can stand in for each other.
//
// A word may belong to several synsets ("odd" is both strange and uneven).
// Lookup is case-insensitive, but members keep the spelling they were
// registered with, so "New York" stays capitalized when it is substituted.
type Thesaurus struct {
	// synsets in registration order
	// Example: [["odd", "strange", "peculiar"], ["odd", "uneven"]]
	synsets [][]string

	// lowercased member -> indexes into synsets
	// Example: "odd" -> [0, 1]
	index map[string][]int
}

// New creates an empty thesaurus.
func New() *Thesaurus {
	return &Thesaurus{
		index: make(map[string][]int),
	}
}

// LoadFromYAML loads synsets from a YAML file.
//
// Expected format:
//
//	synsets:
//	  - [odd, strange, peculiar, unusual]
//	  - [odd, uneven]
//	  - [video, picture, film]
//
// Multi-word members are allowed ("look into").
func LoadFromYAML(path string) (*Thesaurus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads synsets in the LoadFromYAML format.
func Load(r io.Reader) (*Thesaurus, error) {
	var config struct {
		Synsets [][]string `yaml:"synsets"`
	}

	if err := yaml.NewDecoder(r).Decode(&config); err != nil && err != io.EOF {
		return nil, err
	}

	th := New()
	for _, set := range config.Synsets {
		th.AddSynset(set...)
	}
	return th, nil
}

// AddSynset registers a group of interchangeable words. Blank and repeated
// members are dropped; a synset with fewer than two members is ignored.
func (t *Thesaurus) AddSynset(words ...string) {
	members := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		key := strings.ToLower(w)
		if w == "" || seen[key] {
			continue
		}
		seen[key] = true
		members = append(members, w)
	}
	if len(members) < 2 {
		return
	}

	id := len(t.synsets)
	t.synsets = append(t.synsets, members)
	for _, m := range members {
		key := strings.ToLower(m)
		t.index[key] = append(t.index[key], id)
	}
}

// SynonymsOf returns every member of every synset containing word, in
// registration order without repeats. The word itself is included when it
// belongs to a synset; an unknown word yields nothing. It never fails.
func (t *Thesaurus) SynonymsOf(word string) ([]string, error) {
	ids := t.index[strings.ToLower(word)]
	if len(ids) == 0 {
		return nil, nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, id := range ids {
		for _, m := range t.synsets[id] {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// Expand turns keywords into search terms: each keyword followed by the
// members of its synsets. Repeats are kept, so words shared by several
// synsets are more likely to be picked at random.
func (t *Thesaurus) Expand(keywords ...string) []string {
	var terms []string
	for _, kw := range keywords {
		terms = append(terms, kw)
		for _, id := range t.index[strings.ToLower(kw)] {
			terms = append(terms, t.synsets[id]...)
		}
	}
	return terms
}

// Stats returns statistics about the thesaurus contents.
func (t *Thesaurus) Stats() Stats {
	total := 0
	for _, set := range t.synsets {
		total += len(set)
	}
	return Stats{
		Synsets:      len(t.synsets),
		Words:        len(t.index),
		TotalMembers: total,
	}
}

// Stats holds statistics about thesaurus contents.
type Stats struct {
	Synsets      int // Number of synsets
	Words        int // Number of distinct words (case-insensitive)
	TotalMembers int // Sum of synset sizes
}

package analyze

import "strings"

// PhraseEntry is a known noun phrase together with its spelling variants.
type PhraseEntry struct {
	Canonical string
	Variants  []string
	Category  string
}

// PhraseDict recognizes dictionary phrases in a token sequence by greedy
// longest match. It lets phrases that contain function words ("state of
// the art") or single words ("bitcoin") count as noun phrases.
type PhraseDict struct {
	dict   map[string]PhraseEntry // lowercased phrase → entry
	maxLen int
}

// NewPhraseDict creates a dictionary from the given entries.
func NewPhraseDict(entries []PhraseEntry) *PhraseDict {
	dict := make(map[string]PhraseEntry)
	maxLen := 1
	for _, e := range entries {
		for _, p := range append([]string{e.Canonical}, e.Variants...) {
			key := normalizePhrase(p)
			if key == "" {
				continue
			}
			dict[key] = e
			if l := phraseLen(key); l > maxLen {
				maxLen = l
			}
		}
	}
	return &PhraseDict{dict: dict, maxLen: maxLen}
}

// Len returns the number of distinct phrase spellings.
func (p *PhraseDict) Len() int {
	if p == nil {
		return 0
	}
	return len(p.dict)
}

// Match returns how many leading words form the longest dictionary phrase,
// or 0 when none does.
func (p *PhraseDict) Match(words []string) int {
	if p == nil || len(p.dict) == 0 {
		return 0
	}

	// Try matching from longest phrase to shortest
	maxPhrase := min(p.maxLen, len(words))
	for n := maxPhrase; n >= 1; n-- {
		key := strings.ToLower(strings.Join(words[:n], " "))
		if _, ok := p.dict[key]; ok {
			return n
		}
	}
	return 0
}

func normalizePhrase(phrase string) string {
	return strings.ToLower(strings.Join(strings.Fields(phrase), " "))
}

func phraseLen(phrase string) int {
	if phrase == "" {
		return 1
	}
	return len(strings.Fields(phrase))
}

package jiggle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/redactbot/pkg/redactbot/analyze"
	"github.com/cognicore/redactbot/pkg/redactbot/thesaurus"
)

// synonyms is a Resolver backed by a map with exact-case keys.
type synonyms map[string][]string

func (s synonyms) SynonymsOf(word string) ([]string, error) { return s[word], nil }

type failingResolver struct{ err error }

func (f failingResolver) SynonymsOf(string) ([]string, error) { return nil, f.err }

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Words(string) ([]string, error)       { return nil, f.err }
func (f failingAnalyzer) NounPhrases(string) ([]string, error) { return nil, f.err }

// sequence returns 0, 1, 2, ... modulo n.
type sequence struct{ next int }

func (s *sequence) IntN(n int) int {
	v := s.next % n
	s.next++
	return v
}

type constant int

func (c constant) IntN(n int) int { return int(c) % n }

func TestJiggleSkipsRedactedWords(t *testing.T) {
	j := New(analyze.New(nil, nil), synonyms{"odd": {"strange"}}, &sequence{}, nil)

	got, err := j.Jiggle("That ████ cat is odd", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "That ████ cat is strange"; got != want {
		t.Errorf("Jiggle = %q, want %q", got, want)
	}
}

func TestJiggleIsCaseSensitive(t *testing.T) {
	j := New(analyze.New(nil, nil), synonyms{"odd": {"strange"}}, constant(1), nil)

	got, err := j.Jiggle("Odd odd ODD, odd", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Odd strange ODD, strange"; got != want {
		t.Errorf("Jiggle = %q, want %q", got, want)
	}
}

func TestJiggleNeverPicksTheWordItself(t *testing.T) {
	res := synonyms{"odd": {"odd"}}
	for seed := uint64(0); seed < 10; seed++ {
		j := New(analyze.New(nil, nil), res, rand.New(rand.NewPCG(seed, 1)), nil)
		got, err := j.Jiggle("odd", 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != "odd" {
			t.Errorf("seed %d: Jiggle = %q, want unchanged", seed, got)
		}
	}
}

func TestJiggleOrderMatters(t *testing.T) {
	res := synonyms{
		"odd":     {"strange"},
		"strange": {"weird"},
	}
	// Sample order is odd, strange: the first swap creates a second
	// "strange" which the next swap also rewrites.
	j := New(analyze.New(nil, nil), res, &sequence{}, nil)

	got, err := j.Jiggle("odd strange", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "weird weird"; got != want {
		t.Errorf("Jiggle = %q, want %q", got, want)
	}
}

func TestJiggleRespectsWordBoundaries(t *testing.T) {
	j := New(analyze.New(nil, nil), synonyms{"cat": {"kitty"}}, constant(0), nil)

	got, err := j.Jiggle("cat catalog bobcat cat_x cat.", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "kitty catalog bobcat cat_x kitty."; got != want {
		t.Errorf("Jiggle = %q, want %q", got, want)
	}
}

func TestJiggleWordEndingInCombiningMark(t *testing.T) {
	j := New(analyze.New(nil, nil), synonyms{"cafe\u0301": {"bistro"}}, constant(0), nil)

	got, err := j.Jiggle("cafe\u0301 time", 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "bistro time"; got != want {
		t.Errorf("Jiggle = %q, want %q", got, want)
	}
}

func TestJiggleZeroRateAndEmpty(t *testing.T) {
	j := New(analyze.New(nil, nil), synonyms{"odd": {"strange"}}, constant(0), nil)

	for _, tt := range []struct {
		text string
		rate float64
	}{
		{"odd", 0},
		{"", 1},
		{"████ ██", 1},
	} {
		got, err := j.Jiggle(tt.text, tt.rate)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.text {
			t.Errorf("Jiggle(%q, %v) = %q, want unchanged", tt.text, tt.rate, got)
		}
	}
}

func TestJiggleWithThesaurus(t *testing.T) {
	th := thesaurus.New()
	th.AddSynset("weird", "strange", "odd")

	j := New(analyze.New(nil, nil), th, rand.New(rand.NewPCG(7, 7)), nil)
	got, err := j.Jiggle("weird", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "strange" && got != "odd" {
		t.Errorf("Jiggle = %q, want a synonym of weird", got)
	}
}

func TestJigglePropagatesErrors(t *testing.T) {
	boom := errors.New("thesaurus offline")

	j := New(analyze.New(nil, nil), failingResolver{boom}, constant(0), nil)
	if _, err := j.Jiggle("odd", 1); !errors.Is(err, boom) {
		t.Errorf("resolver error = %v, want %v", err, boom)
	}

	j = New(failingAnalyzer{boom}, synonyms{}, constant(0), nil)
	if _, err := j.Jiggle("odd", 1); !errors.Is(err, boom) {
		t.Errorf("analyzer error = %v, want %v", err, boom)
	}
}

func TestAlternatives(t *testing.T) {
	got := alternatives("odd", []string{"odd", "strange", "Odd", "strange", "weird"})
	want := []string{"strange", "Odd", "weird"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alternatives mismatch (-want +got):\n%s", diff)
	}
}

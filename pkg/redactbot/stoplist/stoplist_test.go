package stoplist

import "testing"

func TestManagerBasics(t *testing.T) {
	m := NewManager([]string{"The", "a"})

	if !m.IsStop("the") || !m.IsStop("THE") {
		t.Error("stopwords should match case-insensitively")
	}
	if m.IsStop("cat") {
		t.Error("'cat' should not be a stopword")
	}
}

func TestManagerLenDedupes(t *testing.T) {
	m := NewManager([]string{"zebra", "Apple", "mango", "apple"})
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestDefault(t *testing.T) {
	m := Default()
	for _, w := range []string{"this", "is", "a", "the", "of", "and", "don't"} {
		if !m.IsStop(w) {
			t.Errorf("expected %q in default stoplist", w)
		}
	}
	for _, w := range []string{"weird", "cat", "video", "odd"} {
		if m.IsStop(w) {
			t.Errorf("did not expect %q in default stoplist", w)
		}
	}
}

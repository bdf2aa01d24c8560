package stoplist

import "strings"

// Manager holds the function words that never start or extend a noun phrase.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist from the given terms. Terms are matched
// case-insensitively.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = struct{}{}
	}
	return &Manager{stops: stops}
}

// Default returns a manager seeded with English function words.
func Default() *Manager {
	return NewManager(English)
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// English lists determiners, pronouns, auxiliaries, prepositions,
// conjunctions and a handful of very common verbs and adverbs.
var English = []string{
	// determiners
	"a", "an", "the", "this", "that", "these", "those", "some", "any", "no",
	"every", "each", "all", "both", "either", "neither", "another", "such",
	"what", "which", "whose", "much", "many", "more", "most", "few", "less",
	"own", "other",
	// pronouns
	"i", "me", "my", "mine", "myself", "you", "your", "yours", "yourself",
	"he", "him", "his", "himself", "she", "her", "hers", "herself", "it",
	"its", "itself", "we", "us", "our", "ours", "ourselves", "they", "them",
	"their", "theirs", "themselves", "who", "whom", "someone", "something",
	"anyone", "anything", "everyone", "everything", "nothing", "nobody",
	"u", "ur", "im", "ive", "id", "ill",
	// auxiliaries and copulas
	"am", "is", "are", "was", "were", "be", "been", "being", "have", "has",
	"had", "having", "do", "does", "did", "doing", "done", "will", "would",
	"shall", "should", "can", "could", "may", "might", "must", "ought",
	"isn't", "aren't", "wasn't", "weren't", "don't", "doesn't", "didn't",
	"won't", "wouldn't", "can't", "couldn't", "shouldn't", "haven't",
	"hasn't", "hadn't", "i'm", "it's", "that's", "there's", "you're",
	"we're", "they're", "i've", "i'll", "i'd", "let's",
	// prepositions
	"about", "above", "across", "after", "against", "along", "among",
	"around", "as", "at", "before", "behind", "below", "beneath", "beside",
	"between", "beyond", "by", "down", "during", "except", "for", "from",
	"in", "inside", "into", "like", "near", "of", "off", "on", "onto", "out",
	"outside", "over", "past", "since", "through", "throughout", "till",
	"to", "toward", "towards", "under", "until", "up", "upon", "via", "with",
	"within", "without",
	// conjunctions
	"and", "but", "or", "nor", "so", "yet", "if", "then", "than", "because",
	"while", "when", "where", "why", "how", "though", "although", "unless",
	"whether", "whereas",
	// adverbs and particles
	"not", "very", "too", "also", "just", "only", "even", "still", "already",
	"again", "ever", "never", "always", "often", "here", "there", "now",
	"really", "quite", "rather", "almost", "maybe", "perhaps", "well", "lol",
	"omg", "yes", "yeah", "ok", "okay", "oh",
	// common verbs
	"get", "got", "gets", "go", "goes", "going", "went", "gone", "make",
	"made", "makes", "say", "says", "said", "see", "saw", "seen", "know",
	"knew", "think", "thought", "want", "wants", "look", "looks", "looking",
	"come", "came", "take", "took", "give", "gave", "tell", "told", "feel",
	"felt", "seem", "seems", "keep", "let",
}

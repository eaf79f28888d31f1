package domain

// Vocabulary maps a word to its translation for a single user
type Vocabulary map[string]string

// Document is the whole persisted state: user ID -> vocabulary
type Document map[string]Vocabulary

// Clone returns a copy that shares no maps with v
func (v Vocabulary) Clone() Vocabulary {
	out := make(Vocabulary, len(v))
	for word, translation := range v {
		out[word] = translation
	}
	return out
}

// WordPair is a single entry, used for display
type WordPair struct {
	Word        string
	Translation string
}

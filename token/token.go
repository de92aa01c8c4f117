package token

// Token is one row of the flat token table produced by the CoNLL-U reader.
// DocID and SentenceID tag the token with its owning document and sentence;
// SentenceID is unique only within a document.
type Token struct {
	DocID      string `json:"doc"`
	SentenceID string `json:"sent"`

	// Index is the 1-based position of the token within its sentence, as
	// given in the source.
	Index int `json:"index"`

	// Head is the Index of this token's governor within the same sentence.
	// 0 means the token is the sentence root.
	Head int `json:"head"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// Pos is the coarse (universal) POS tag, f.ex. NOUN, VERB, PUNCT.
	Pos string `json:"pos"`

	// A string containing detailed POS data
	Tag string `json:"tag"`

	Feats string `json:"feats,omitempty"`
	Dep   string `json:"dep"`
	Misc  string `json:"misc,omitempty"`
}

// Doc is a stored document: the flat token table plus metadata.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels []string `json:"labels,omitempty"`
	Tokens []Token  `json:"tokens"`
}

// Library is a collection of Doc
type Library []Doc

// Sentences regroups the flat token table by SentenceID, preserving the
// original token order within and across sentences.
func (d Doc) Sentences() [][]Token {
	var sentences [][]Token
	var last string
	for i, t := range d.Tokens {
		if i == 0 || t.SentenceID != last {
			sentences = append(sentences, nil)
			last = t.SentenceID
		}
		sentences[len(sentences)-1] = append(sentences[len(sentences)-1], t)
	}

	return sentences
}

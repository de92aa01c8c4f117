// Package conllu reads the CoNLL-U dependency annotation format into the
// flat token table consumed by the mdd aggregator.
//
// For a description of the format see
// https://universaldependencies.org/format.html
package conllu

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/revelaction/depdist/token"
)

const (
	fieldSeparator = "\t"
	numFields      = 10

	// newdocPrefix starts a new document. It can carry an explicit id
	// (`# newdoc id = x`); without one the document gets a sequential
	// integer id.
	newdocPrefix = "# newdoc"

	// sentIDPrefix overrides the id of the sentence about to start.
	sentIDPrefix = "# sent_id ="
)

// MalformedLineError reports a data line that does not conform to the
// CoNLL-U format. The whole parse is aborted, no partial token table is
// returned.
type MalformedLineError struct {
	// Line is the 1-based line number in the input text.
	Line int

	// Text is the raw content of the offending line.
	Text string

	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed conllu line %d (%s): %q", e.Line, e.Reason, e.Text)
}

// scanner carries the running document and sentence state of a single parse.
// It replaces the implicit global counters of spreadsheet-style
// implementations with an explicit accumulator.
type scanner struct {
	// docID is the current document id, empty until the first newdoc
	// marker or the first data line.
	docID string

	// docSeq numbers documents for implicit ids.
	docSeq int

	// sentSeq counts sentences within the current document, starting at 1.
	// Each blank line increments it.
	sentSeq int

	// sentID is the id of the current sentence: the decimal sentSeq unless
	// overridden by a sent_id comment.
	sentID string
}

func newScanner() *scanner {
	return &scanner{sentSeq: 1, sentID: "1"}
}

// newDoc starts a new document and resets the sentence counter.
func (s *scanner) newDoc(id string) {
	s.docSeq++
	if id == "" {
		id = strconv.Itoa(s.docSeq)
	}
	s.docID = id
	s.sentSeq = 1
	s.sentID = "1"
}

// newSentence advances the sentence counter and drops any sent_id override.
func (s *scanner) newSentence() {
	s.sentSeq++
	s.sentID = strconv.Itoa(s.sentSeq)
}

// Parse converts CoNLL-U text into the ordered flat token table. Comment
// lines select the current document and sentence, blank lines separate
// sentences, data lines are emitted as one Token each.
//
// Multiword range lines (ID `n-m`) and empty nodes (ID `n.m`) are part of
// the format but have no head of their own; they are skipped.
func Parse(text string) ([]token.Token, error) {
	var tokens []token.Token

	st := newScanner()
	line := 0

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		raw := sc.Text()

		if strings.TrimSpace(raw) == "" {
			st.newSentence()
			continue
		}

		if strings.HasPrefix(raw, "#") {
			st.comment(raw)
			continue
		}

		tok, skip, err := st.data(raw, line)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}

		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading conllu input: %w", err)
	}

	return tokens, nil
}

// comment handles a `#` metadata line. Unrecognized comments are ignored.
func (s *scanner) comment(raw string) {
	if strings.HasPrefix(raw, newdocPrefix) {
		rest := strings.TrimPrefix(raw, newdocPrefix)
		id := ""
		if eq := strings.Index(rest, "="); eq >= 0 && strings.Contains(rest, "id") {
			id = strings.TrimSpace(rest[eq+1:])
		}
		s.newDoc(id)
		return
	}

	if strings.HasPrefix(raw, sentIDPrefix) {
		s.sentID = strings.TrimSpace(strings.TrimPrefix(raw, sentIDPrefix))
		return
	}
}

// data parses a 10-field data line into a Token tagged with the current
// document and sentence. skip is true for multiword ranges and empty nodes.
func (s *scanner) data(raw string, line int) (token.Token, bool, error) {
	fields := strings.Split(raw, fieldSeparator)
	if len(fields) != numFields {
		return token.Token{}, false, &MalformedLineError{
			Line:   line,
			Text:   raw,
			Reason: fmt.Sprintf("%d tab-separated fields, want %d", len(fields), numFields),
		}
	}

	// multiword token range or empty node
	if strings.ContainsAny(fields[0], "-.") {
		return token.Token{}, true, nil
	}

	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return token.Token{}, false, &MalformedLineError{Line: line, Text: raw, Reason: "non-integer ID field"}
	}

	head, err := strconv.Atoi(fields[6])
	if err != nil {
		return token.Token{}, false, &MalformedLineError{Line: line, Text: raw, Reason: "non-integer HEAD field"}
	}

	// A data line before any newdoc marker: all tokens belong to a single
	// implicit document.
	if s.docID == "" {
		s.newDoc("")
	}

	tok := token.Token{
		DocID:      s.docID,
		SentenceID: s.sentID,
		Index:      idx,
		Head:       head,
		Text:       fields[1],
		Lemma:      parseField(fields[2]),
		Pos:        parseField(fields[3]),
		Tag:        parseField(fields[4]),
		Feats:      parseField(fields[5]),
		Dep:        parseField(fields[7]),
		Misc:       parseField(fields[9]),
	}

	return tok, false, nil
}

// parseField maps the CoNLL-U underscore placeholder to the empty string.
func parseField(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

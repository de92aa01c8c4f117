package mdd

import (
	"math"
	"testing"

	"github.com/revelaction/depdist/token"
)

// tok is a compact constructor for test token tables.
func tok(doc, sent string, index int, text, pos string, head int) token.Token {
	return token.Token{
		DocID:      doc,
		SentenceID: sent,
		Index:      index,
		Text:       text,
		Pos:        pos,
		Head:       head,
	}
}

// sentence1 is "I eat the pizza ." — 4 kept tokens, sum_dd=4.
func sentence1(doc, sent string) []token.Token {
	return []token.Token{
		tok(doc, sent, 1, "I", "PRON", 2),
		tok(doc, sent, 2, "eat", "VERB", 0),
		tok(doc, sent, 3, "the", "DET", 4),
		tok(doc, sent, 4, "pizza", "NOUN", 2),
		tok(doc, sent, 5, ".", "PUNCT", 2),
	}
}

// sentence2 is "He said quietly , then , that the dog slept , outside ." —
// 9 kept tokens after removing 3 commas and one period, sum_dd=16.
func sentence2(doc, sent string) []token.Token {
	return []token.Token{
		tok(doc, sent, 1, "He", "PRON", 2),
		tok(doc, sent, 2, "said", "VERB", 0),
		tok(doc, sent, 3, "quietly", "ADV", 2),
		tok(doc, sent, 4, ",", "PUNCT", 2),
		tok(doc, sent, 5, "then", "ADV", 2),
		tok(doc, sent, 6, ",", "PUNCT", 2),
		tok(doc, sent, 7, "that", "SCONJ", 10),
		tok(doc, sent, 8, "the", "DET", 9),
		tok(doc, sent, 9, "dog", "NOUN", 10),
		tok(doc, sent, 10, "slept", "VERB", 2),
		tok(doc, sent, 11, ",", "PUNCT", 10),
		tok(doc, sent, 12, "outside", "ADV", 10),
		tok(doc, sent, 13, ".", "PUNCT", 2),
	}
}

func exampleDoc() []token.Token {
	tokens := sentence1("1", "1")
	return append(tokens, sentence2("1", "2")...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestAggregateDocumentGranularity(t *testing.T) {
	rows, anomalies := Aggregate(exampleDoc(), Document)

	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalies)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.DocID != "1" || row.SentenceID != "" {
		t.Errorf("unexpected row keys: doc %q sent %q", row.DocID, row.SentenceID)
	}
	if row.SumDD != 20.0 {
		t.Errorf("expected sum_dd 20, got %v", row.SumDD)
	}
	if row.NumTokens != 13 {
		t.Errorf("expected 13 tokens, got %d", row.NumTokens)
	}
	if row.NumSents != 2 {
		t.Errorf("expected 2 sentences, got %d", row.NumSents)
	}
	if !row.Defined || !almostEqual(row.MDD, 20.0/11.0) {
		t.Errorf("expected mdd %.4f, got %.4f (defined %t)", 20.0/11.0, row.MDD, row.Defined)
	}
}

func TestAggregateSentenceGranularity(t *testing.T) {
	rows, anomalies := Aggregate(exampleDoc(), Sentence)

	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalies)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	r1 := rows[0]
	if r1.SentenceID != "1" || r1.SumDD != 4.0 || r1.NumTokens != 4 || !almostEqual(r1.MDD, 4.0/3.0) {
		t.Errorf("sentence 1: got %+v", r1)
	}
	if r1.NumSents != 1 {
		t.Errorf("sentence row must have n_sents 1, got %d", r1.NumSents)
	}

	r2 := rows[1]
	if r2.SentenceID != "2" || r2.SumDD != 16.0 || r2.NumTokens != 9 || !almostEqual(r2.MDD, 2.0) {
		t.Errorf("sentence 2: got %+v", r2)
	}
}

// Aggregating one extracted sentence in isolation yields the same numbers as
// its row computed from the whole document.
func TestRoundTripSubset(t *testing.T) {
	full, _ := Aggregate(exampleDoc(), Sentence)

	isolated, _ := Aggregate(sentence2("1", "2"), Sentence)
	if len(isolated) != 1 {
		t.Fatalf("expected 1 row, got %d", len(isolated))
	}

	want := full[1]
	got := isolated[0]
	if got.SumDD != want.SumDD || got.NumTokens != want.NumTokens || got.MDD != want.MDD {
		t.Errorf("isolated sentence differs: got %+v, want %+v", got, want)
	}
}

func TestRootHasZeroDistance(t *testing.T) {
	entries, _ := Reindex(exampleDoc())

	for _, e := range entries {
		if e.Head == 0 && DD(e) != 0 {
			t.Errorf("root %q has dd %d, want 0", e.Text, DD(e))
		}
	}
}

// Adding punctuation anywhere must not change sums or the relative order of
// the kept tokens.
func TestPunctuationExclusion(t *testing.T) {
	plain := sentence1("1", "1")

	// the same sentence with extra punctuation sprinkled in, indices and
	// heads renumbered accordingly
	sprinkled := []token.Token{
		tok("1", "1", 1, "-", "PUNCT", 3),
		tok("1", "1", 2, "I", "PRON", 3),
		tok("1", "1", 3, "eat", "VERB", 0),
		tok("1", "1", 4, ",", "punct", 3),
		tok("1", "1", 5, "the", "DET", 6),
		tok("1", "1", 6, "pizza", "NOUN", 3),
		tok("1", "1", 7, ".", "PUNCT", 3),
	}

	want, _ := Aggregate(plain, Sentence)
	got, _ := Aggregate(sprinkled, Sentence)

	if got[0].SumDD != want[0].SumDD || got[0].NumTokens != want[0].NumTokens {
		t.Errorf("punctuation changed the aggregate: got %+v, want %+v", got[0], want[0])
	}

	entries, _ := Reindex(sprinkled)
	wantOrder := []string{"I", "eat", "the", "pizza"}
	for i, e := range entries {
		if e.Text != wantOrder[i] {
			t.Errorf("position %d: got %q, want %q", i, e.Text, wantOrder[i])
		}
	}
}

// The punctuation filter is case-insensitive.
func TestPunctuationCaseInsensitive(t *testing.T) {
	tokens := []token.Token{
		tok("1", "1", 1, "hi", "INTJ", 0),
		tok("1", "1", 2, "!", "punct", 1),
		tok("1", "1", 3, "?", "Punct", 1),
	}

	entries, _ := Reindex(tokens)
	if len(entries) != 1 {
		t.Fatalf("expected 1 kept token, got %d", len(entries))
	}
}

func TestIndexContiguity(t *testing.T) {
	entries, _ := Reindex(exampleDoc())

	seen := map[string][]int{}
	for _, e := range entries {
		seen[e.SentenceID] = append(seen[e.SentenceID], e.NewIndex)
	}

	for sent, indices := range seen {
		for i, idx := range indices {
			if idx != i+1 {
				t.Errorf("sentence %s: position %d has new index %d", sent, i, idx)
			}
		}
	}
}

// A kept token whose head was removed as punctuation is reported and
// excluded from both the sum and the token count.
func TestDanglingHead(t *testing.T) {
	tokens := []token.Token{
		tok("1", "1", 1, "huh", "INTJ", 2),
		tok("1", "1", 2, "?", "PUNCT", 3),
		tok("1", "1", 3, "said", "VERB", 0),
		tok("1", "1", 4, "he", "PRON", 3),
	}

	rows, anomalies := Aggregate(tokens, Sentence)

	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
	}
	a := anomalies[0]
	if a.Kind != DanglingHead || a.Index != 1 {
		t.Errorf("unexpected anomaly: %+v", a)
	}

	row := rows[0]
	if row.NumTokens != 2 {
		t.Errorf("dangling token must not be counted: got %d tokens", row.NumTokens)
	}
	if row.SumDD != 1.0 {
		t.Errorf("expected sum_dd 1, got %v", row.SumDD)
	}
}

func TestRootCountAnomaly(t *testing.T) {
	noRoot := []token.Token{
		tok("1", "1", 1, "a", "DET", 2),
		tok("1", "1", 2, "b", "NOUN", 1),
	}

	_, anomalies := Aggregate(noRoot, Sentence)
	if len(anomalies) != 1 || anomalies[0].Kind != RootCount || anomalies[0].Index != 0 {
		t.Fatalf("expected one root-count anomaly with 0 roots, got %v", anomalies)
	}

	twoRoots := []token.Token{
		tok("1", "1", 1, "a", "NOUN", 0),
		tok("1", "1", 2, "b", "NOUN", 0),
	}

	_, anomalies = Aggregate(twoRoots, Sentence)
	if len(anomalies) != 1 || anomalies[0].Kind != RootCount || anomalies[0].Index != 2 {
		t.Fatalf("expected one root-count anomaly with 2 roots, got %v", anomalies)
	}
}

// An anomaly in one sentence does not abort the aggregation of others.
func TestAnomalyIsolation(t *testing.T) {
	tokens := append([]token.Token{
		tok("1", "0", 1, "a", "DET", 2),
		tok("1", "0", 2, "b", "NOUN", 1),
	}, sentence1("1", "1")...)

	rows, anomalies := Aggregate(tokens, Sentence)

	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].SumDD != 4.0 || !almostEqual(rows[1].MDD, 4.0/3.0) {
		t.Errorf("healthy sentence affected by anomalous one: %+v", rows[1])
	}
}

// Fewer than two kept tokens leaves the mean undefined, never Inf or NaN.
func TestUndefinedMDD(t *testing.T) {
	tokens := []token.Token{
		tok("1", "1", 1, "hi", "INTJ", 0),
		tok("1", "1", 2, "!", "PUNCT", 1),
	}

	rows, _ := Aggregate(tokens, Sentence)

	row := rows[0]
	if row.Defined {
		t.Fatalf("expected undefined mdd, got %v", row.MDD)
	}
	if math.IsInf(row.MDD, 0) || math.IsNaN(row.MDD) {
		t.Errorf("undefined mdd leaked %v", row.MDD)
	}
}

// The document mean is the dd-weighted mean, not the mean of the sentence
// means, and the denominators add up.
func TestAggregationConsistency(t *testing.T) {
	docRows, _ := Aggregate(exampleDoc(), Document)
	sentRows, _ := Aggregate(exampleDoc(), Sentence)

	denomSum := 0
	for _, r := range sentRows {
		denomSum += r.NumTokens - 1
	}
	if got := docRows[0].NumTokens - docRows[0].NumSents; got != denomSum {
		t.Errorf("denominators disagree: document %d, sentences %d", got, denomSum)
	}

	meanOfMeans := (sentRows[0].MDD + sentRows[1].MDD) / 2
	if almostEqual(docRows[0].MDD, meanOfMeans) {
		t.Errorf("document mdd must be dd-weighted, not the mean of sentence mdds")
	}
}

// Sentence ids repeat across documents; grouping must scope them per doc.
func TestNoCrossDocumentLeakage(t *testing.T) {
	tokens := append(sentence1("a", "1"), sentence2("b", "1")...)

	rows, _ := Aggregate(tokens, Sentence)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].DocID != "a" || rows[1].DocID != "b" {
		t.Errorf("unexpected doc ids: %q, %q", rows[0].DocID, rows[1].DocID)
	}
	if rows[0].SumDD != 4.0 || rows[1].SumDD != 16.0 {
		t.Errorf("cross-document leakage: %v, %v", rows[0].SumDD, rows[1].SumDD)
	}
}

func TestHandlerAccumulates(t *testing.T) {
	hdl := NewHandler(Document)
	hdl.Aggregate(sentence1("a", "1"))
	hdl.Aggregate(sentence2("b", "1"))

	rows := hdl.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].DocID != "a" || rows[1].DocID != "b" {
		t.Errorf("unexpected doc ids: %q, %q", rows[0].DocID, rows[1].DocID)
	}
}

// Package mdd computes Mean Dependency Distance over a flat token table.
//
// Punctuation carries no dependency distance. The aggregator removes it,
// re-indexes every sentence from 1 and remaps the head references through
// the index change before summing distances.
package mdd

import (
	"strings"

	"github.com/revelaction/depdist/token"
)

// punctTag is the universal POS tag excluded from distance computation.
const punctTag = "PUNCT"

// Granularity selects the grouping of the aggregate rows.
type Granularity int

const (
	Sentence Granularity = iota
	Document
)

func (g Granularity) String() string {
	if g == Document {
		return "document"
	}
	return "sentence"
}

// Row is one aggregate result, per sentence or per document.
type Row struct {
	DocID string `json:"doc"`

	// SentenceID is empty at document granularity.
	SentenceID string `json:"sent,omitempty"`

	SumDD     float64 `json:"sum_dd"`
	NumTokens int     `json:"n_tokens"`
	NumSents  int     `json:"n_sents"`

	// MDD is SumDD / (NumTokens - NumSents). It is only meaningful when
	// Defined is true; a group with fewer than two distance-bearing tokens
	// has no mean.
	MDD     float64 `json:"mdd"`
	Defined bool    `json:"defined"`
}

// AnomalyKind classifies a per-sentence data irregularity.
type AnomalyKind int

const (
	// DanglingHead: a kept token's head was removed as punctuation. The
	// token contributes to neither SumDD nor NumTokens.
	DanglingHead AnomalyKind = iota

	// RootCount: the sentence does not have exactly one token with head 0.
	RootCount
)

func (k AnomalyKind) String() string {
	if k == RootCount {
		return "root-count"
	}
	return "dangling-head"
}

// Anomaly reports a data irregularity in one sentence. Anomalies never abort
// the aggregation of other sentences.
type Anomaly struct {
	DocID      string      `json:"doc"`
	SentenceID string      `json:"sent"`
	Kind       AnomalyKind `json:"kind"`

	// Index is the original token index involved: the dangling token for
	// DanglingHead, the number of roots found for RootCount.
	Index int `json:"index"`
}

// Entry is a filtered, re-indexed token: the derived view the distances are
// computed on.
type Entry struct {
	token.Token

	// NewIndex is the contiguous 1-based position after punctuation removal.
	NewIndex int

	// NewHead is the re-indexed head reference, 0 for the root. Only valid
	// when HeadKnown is true.
	NewHead   int
	HeadKnown bool
}

// group is one (DocID, SentenceID) sentence after filtering. roots counts
// head==0 tokens over the whole sentence, punctuation included.
type group struct {
	entries []Entry
	roots   int
}

type key struct {
	doc  string
	sent string
}

// Reindex removes punctuation and rebuilds contiguous per-sentence indices,
// remapping every head reference through an explicit old-to-new index map.
// A head that was itself removed yields HeadKnown=false and a DanglingHead
// anomaly.
func Reindex(tokens []token.Token) ([]Entry, []Anomaly) {
	groups, order := groupKept(tokens)

	var entries []Entry
	var anomalies []Anomaly
	for _, k := range order {
		g := groups[k]

		// old index -> new index, built before head remapping
		newIndex := make(map[int]int, len(g.entries))
		for i := range g.entries {
			g.entries[i].NewIndex = i + 1
			newIndex[g.entries[i].Index] = i + 1
		}

		for i := range g.entries {
			e := &g.entries[i]
			if e.Head == 0 {
				// root sentinel, preserved through remapping
				e.NewHead = 0
				e.HeadKnown = true
				continue
			}

			ni, ok := newIndex[e.Head]
			if !ok {
				e.HeadKnown = false
				anomalies = append(anomalies, Anomaly{
					DocID:      k.doc,
					SentenceID: k.sent,
					Kind:       DanglingHead,
					Index:      e.Index,
				})
				continue
			}
			e.NewHead = ni
			e.HeadKnown = true
		}

		if g.roots != 1 {
			anomalies = append(anomalies, Anomaly{
				DocID:      k.doc,
				SentenceID: k.sent,
				Kind:       RootCount,
				Index:      g.roots,
			})
		}

		entries = append(entries, g.entries...)
	}

	return entries, anomalies
}

// groupKept filters punctuation and groups the remaining tokens per
// sentence, preserving first-appearance order of the groups.
func groupKept(tokens []token.Token) (map[key]*group, []key) {
	groups := map[key]*group{}
	var order []key

	for _, t := range tokens {
		k := key{doc: t.DocID, sent: t.SentenceID}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}

		if t.Head == 0 {
			g.roots++
		}

		if strings.EqualFold(t.Pos, punctTag) {
			continue
		}

		g.entries = append(g.entries, Entry{Token: t})
	}

	return groups, order
}

// DD is the dependency distance of a single re-indexed token: the absolute
// difference between its position and its head's position, 0 for the root.
func DD(e Entry) int {
	if !e.HeadKnown {
		return 0
	}
	if e.NewHead == 0 {
		return 0
	}

	d := e.NewHead - e.NewIndex
	if d < 0 {
		return -d
	}
	return d
}

// Aggregate computes MDD rows at the given granularity. Rows appear in
// first-appearance order of their group in the input. Anomalous tokens are
// excluded from both the distance sum and the token count and reported.
func Aggregate(tokens []token.Token, g Granularity) ([]Row, []Anomaly) {
	entries, anomalies := Reindex(tokens)

	type acc struct {
		row   Row
		sents map[string]struct{}
	}

	accs := map[key]*acc{}
	var order []key

	for _, e := range entries {
		k := key{doc: e.DocID}
		if g == Sentence {
			k.sent = e.SentenceID
		}

		a, ok := accs[k]
		if !ok {
			a = &acc{
				row:   Row{DocID: e.DocID, SentenceID: k.sent},
				sents: map[string]struct{}{},
			}
			accs[k] = a
			order = append(order, k)
		}

		if !e.HeadKnown {
			continue
		}

		a.row.SumDD += float64(DD(e))
		a.row.NumTokens++
		a.sents[e.SentenceID] = struct{}{}
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		a := accs[k]
		a.row.NumSents = len(a.sents)

		if n := a.row.NumTokens - a.row.NumSents; n > 0 {
			a.row.MDD = a.row.SumDD / float64(n)
			a.row.Defined = true
		}

		rows = append(rows, a.row)
	}

	return rows, anomalies
}

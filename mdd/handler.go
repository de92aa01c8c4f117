package mdd

import (
	"github.com/revelaction/depdist/token"
)

// Handler accumulates MDD aggregates over one or more token tables at a
// fixed granularity.
type Handler struct {
	granularity Granularity

	rows      []Row
	anomalies []Anomaly
}

func NewHandler(g Granularity) *Handler {
	return &Handler{granularity: g}
}

// Aggregate computes the rows for the given token table and appends them to
// the handler state.
func (h *Handler) Aggregate(tokens []token.Token) {
	rows, anomalies := Aggregate(tokens, h.granularity)
	h.rows = append(h.rows, rows...)
	h.anomalies = append(h.anomalies, anomalies...)
}

// AggregateDoc runs Aggregate over a stored document's token table.
func (h *Handler) AggregateDoc(doc token.Doc) {
	h.Aggregate(doc.Tokens)
}

func (h *Handler) Rows() []Row {
	return h.rows
}

func (h *Handler) Anomalies() []Anomaly {
	return h.anomalies
}

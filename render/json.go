package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/depdist/mdd"
)

// JSONRenderer writes aggregate rows as a JSON array to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// jsonRow renders MDD as null when the value is undefined.
type jsonRow struct {
	mdd.Row
	MDD *float64 `json:"mdd"`
}

// Render serializes aggregate rows as a JSON array.
func (r *JSONRenderer) Render(rows []mdd.Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		jr := jsonRow{Row: row}
		if row.Defined {
			v := row.MDD
			jr.MDD = &v
		}
		out = append(out, jr)
	}

	return json.NewEncoder(r.W).Encode(out)
}

// compile-time interface check
var _ Renderer = (*JSONRenderer)(nil)

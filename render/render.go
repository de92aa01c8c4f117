// Package render formats aggregate rows for the terminal, CSV and JSON.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/revelaction/depdist/mdd"
)

const Defaultformat = "table"

var (
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Off       = "\033[0m"
)

func SupportedFormats() []string {
	return []string{"table", "csv", "json"}
}

// Renderer writes aggregate rows to an output stream.
type Renderer interface {
	Render(rows []mdd.Row) error
}

// NewRenderer returns the renderer for the given format name.
func NewRenderer(format string, w io.Writer) (Renderer, error) {
	switch format {
	case "table":
		return &TableRenderer{W: w}, nil
	case "csv":
		return &CSVRenderer{W: w}, nil
	case "json":
		return NewJSONRenderer(w), nil
	}

	return nil, fmt.Errorf("unsupported format: %s", format)
}

// TableRenderer writes an aligned plain-text table.
type TableRenderer struct {
	W io.Writer

	HasColor bool
}

var _ Renderer = (*TableRenderer)(nil)

func (r *TableRenderer) Render(rows []mdd.Row) error {
	header := fmt.Sprintf("%-12s %-12s %8s %8s %7s %10s", "doc", "sent", "sum_dd", "tokens", "sents", "mdd")
	if r.HasColor {
		header = Grey256 + header + Off
	}
	if _, err := fmt.Fprintln(r.W, header); err != nil {
		return err
	}

	for _, row := range rows {
		_, err := fmt.Fprintf(r.W, "%-12s %-12s %8.1f %8d %7d %10s\n",
			row.DocID, row.SentenceID, row.SumDD, row.NumTokens, row.NumSents, mddString(row))
		if err != nil {
			return err
		}
	}

	return nil
}

// Anomalies writes aggregation anomalies, one per line. Meant for the error
// stream, next to the rows on the output stream.
func Anomalies(w io.Writer, anomalies []mdd.Anomaly) {
	for _, a := range anomalies {
		switch a.Kind {
		case mdd.DanglingHead:
			fmt.Fprintf(w, "⚠  doc %s sent %s: token %d head was removed as punctuation, excluded\n", a.DocID, a.SentenceID, a.Index)
		case mdd.RootCount:
			fmt.Fprintf(w, "⚠  doc %s sent %s: %d roots, want 1\n", a.DocID, a.SentenceID, a.Index)
		}
	}
}

// NextFormat returns the format after the given one, following the
// SupportedFormats() order.
func NextFormat(format string) string {
	supported := SupportedFormats()
	for i, f := range supported {
		if f == format {
			if i == len(supported)-1 {
				return supported[0]
			}
			return supported[i+1]
		}
	}
	return Defaultformat
}

func mddString(row mdd.Row) string {
	if !row.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(row.MDD, 'f', 4, 64)
}

package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/revelaction/depdist/mdd"
)

// CSVRenderer writes aggregate rows as CSV with a header record.
type CSVRenderer struct {
	W io.Writer
}

var _ Renderer = (*CSVRenderer)(nil)

func (r *CSVRenderer) Render(rows []mdd.Row) error {
	w := csv.NewWriter(r.W)

	if err := w.Write([]string{"doc", "sent", "sum_dd", "n_tokens", "n_sents", "mdd"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.DocID,
			row.SentenceID,
			strconv.FormatFloat(row.SumDD, 'f', 1, 64),
			strconv.Itoa(row.NumTokens),
			strconv.Itoa(row.NumSents),
			mddString(row),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

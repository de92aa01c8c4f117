package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/depdist/mdd"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestJSONRendererRenderRows(t *testing.T) {
	rows := []mdd.Row{
		{DocID: "1", SentenceID: "1", SumDD: 4, NumTokens: 4, NumSents: 1, MDD: 4.0 / 3.0, Defined: true},
		{DocID: "1", SentenceID: "2", SumDD: 0, NumTokens: 1, NumSents: 1},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0]["mdd"] == nil {
		t.Errorf("expected numeric mdd, got null")
	}
	if results[0]["sum_dd"].(float64) != 4 {
		t.Errorf("expected sum_dd 4, got %v", results[0]["sum_dd"])
	}

	// undefined mean serializes as null
	if results[1]["mdd"] != nil {
		t.Errorf("expected null mdd for the degenerate row, got %v", results[1]["mdd"])
	}
}

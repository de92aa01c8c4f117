package mdd_test

import (
	"math"
	"strings"
	"testing"

	"github.com/revelaction/depdist/conllu"
	"github.com/revelaction/depdist/mdd"
)

// the worked two-sentence example as CoNLL-U text
var exampleConllu = strings.Join([]string{
	"# newdoc id = example",
	"# text = I eat the pizza .",
	"1\tI\tI\tPRON\t_\t_\t2\tnsubj\t_\t_",
	"2\teat\teat\tVERB\t_\t_\t0\troot\t_\t_",
	"3\tthe\tthe\tDET\t_\t_\t4\tdet\t_\t_",
	"4\tpizza\tpizza\tNOUN\t_\t_\t2\tobj\t_\t_",
	"5\t.\t.\tPUNCT\t_\t_\t2\tpunct\t_\t_",
	"",
	"# text = He said quietly , then , that the dog slept , outside .",
	"1\tHe\the\tPRON\t_\t_\t2\tnsubj\t_\t_",
	"2\tsaid\tsay\tVERB\t_\t_\t0\troot\t_\t_",
	"3\tquietly\tquietly\tADV\t_\t_\t2\tadvmod\t_\t_",
	"4\t,\t,\tPUNCT\t_\t_\t2\tpunct\t_\t_",
	"5\tthen\tthen\tADV\t_\t_\t2\tadvmod\t_\t_",
	"6\t,\t,\tPUNCT\t_\t_\t2\tpunct\t_\t_",
	"7\tthat\tthat\tSCONJ\t_\t_\t10\tmark\t_\t_",
	"8\tthe\tthe\tDET\t_\t_\t9\tdet\t_\t_",
	"9\tdog\tdog\tNOUN\t_\t_\t10\tnsubj\t_\t_",
	"10\tslept\tsleep\tVERB\t_\t_\t2\tccomp\t_\t_",
	"11\t,\t,\tPUNCT\t_\t_\t10\tpunct\t_\t_",
	"12\toutside\toutside\tADV\t_\t_\t10\tadvmod\t_\t_",
	"13\t.\t.\tPUNCT\t_\t_\t2\tpunct\t_\t_",
}, "\n")

func TestEndToEnd(t *testing.T) {
	tokens, err := conllu.Parse(exampleConllu)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(tokens) != 18 {
		t.Fatalf("expected 18 tokens, got %d", len(tokens))
	}

	docRows, anomalies := mdd.Aggregate(tokens, mdd.Document)
	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %v", anomalies)
	}
	if len(docRows) != 1 {
		t.Fatalf("expected 1 document row, got %d", len(docRows))
	}

	row := docRows[0]
	if row.DocID != "example" {
		t.Errorf("expected doc id example, got %q", row.DocID)
	}
	if row.SumDD != 20.0 || row.NumTokens != 13 || row.NumSents != 2 {
		t.Errorf("unexpected document aggregate: %+v", row)
	}
	if math.Abs(row.MDD-1.8182) > 1e-4 {
		t.Errorf("expected mdd ≈ 1.8182, got %.4f", row.MDD)
	}

	sentRows, _ := mdd.Aggregate(tokens, mdd.Sentence)
	if len(sentRows) != 2 {
		t.Fatalf("expected 2 sentence rows, got %d", len(sentRows))
	}
	if sentRows[0].SumDD != 4.0 || sentRows[0].NumTokens != 4 || math.Abs(sentRows[0].MDD-4.0/3.0) > 1e-4 {
		t.Errorf("sentence 1: %+v", sentRows[0])
	}
	if sentRows[1].SumDD != 16.0 || sentRows[1].NumTokens != 9 || sentRows[1].MDD != 2.0 {
		t.Errorf("sentence 2: %+v", sentRows[1])
	}
}

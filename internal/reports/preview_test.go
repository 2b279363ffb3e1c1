package reports

import (
	"reflect"
	"testing"
)

func TestParsePreviewEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n", "\t \n"} {
		p := ParsePreview(in)
		if len(p.Headers) != 0 || len(p.Rows) != 0 {
			t.Errorf("ParsePreview(%q) = %+v, want empty", in, p)
		}
		if p.Headers == nil || p.Rows == nil {
			t.Errorf("ParsePreview(%q) returned nil slices", in)
		}
	}
}

func TestParsePreviewBasic(t *testing.T) {
	p := ParsePreview("type,amount\nINCOME,10.00\nEXPENSE,5.50")

	if !reflect.DeepEqual(p.Headers, []string{"type", "amount"}) {
		t.Errorf("headers = %v", p.Headers)
	}
	want := [][]string{{"INCOME", "10.00"}, {"EXPENSE", "5.50"}}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("rows = %v, want %v", p.Rows, want)
	}
}

func TestParsePreviewSynthesizedHeaders(t *testing.T) {
	p := ParsePreview(",amount,\nINCOME,10.00,x")

	if !reflect.DeepEqual(p.Headers, []string{"Column 1", "amount", "Column 3"}) {
		t.Errorf("headers = %v", p.Headers)
	}
}

func TestParsePreviewRowWidthNormalization(t *testing.T) {
	p := ParsePreview("a,b\n1,2,3,4\n5")

	if len(p.Headers) != 4 {
		t.Fatalf("headers = %v, want width 4", p.Headers)
	}
	if p.Headers[2] != "Column 3" || p.Headers[3] != "Column 4" {
		t.Errorf("padded headers = %v", p.Headers)
	}
	if !reflect.DeepEqual(p.Rows[1], []string{"5", "", "", ""}) {
		t.Errorf("short row = %v", p.Rows[1])
	}
}

func TestParsePreviewDuplicateHeaderKeys(t *testing.T) {
	p := ParsePreview("total,total,total\n1,2,3")

	if !reflect.DeepEqual(p.Headers, []string{"total", "total", "total"}) {
		t.Errorf("headers = %v", p.Headers)
	}
	if !reflect.DeepEqual(p.Keys, []string{"total", "total#2", "total#3"}) {
		t.Errorf("keys = %v", p.Keys)
	}
}

func TestParsePreviewQuotedCells(t *testing.T) {
	p := ParsePreview("concept,amount\n\"SaaS, subscription\",\"10.00\"\n\"He said \"\"ok\"\"\",5")

	if p.Rows[0][0] != "SaaS, subscription" {
		t.Errorf("cell = %q", p.Rows[0][0])
	}
	if p.Rows[1][0] != `He said "ok"` {
		t.Errorf("cell = %q", p.Rows[1][0])
	}
}

func TestParsePreviewSkipsBlankLines(t *testing.T) {
	p := ParsePreview("a,b\n\n1,2\n\n")

	if len(p.Rows) != 1 {
		t.Errorf("rows = %v, want a single row", p.Rows)
	}
}

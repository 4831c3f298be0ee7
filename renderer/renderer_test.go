package renderer

import (
	"bytes"
	"encoding/json"
	"iter"
	"strings"
	"testing"

	"github.com/etnz/commission"
	"github.com/etnz/commission/feed"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const input = `2014-12-31,4,natural,cash_out,1200.00,EUR
2015-01-01,4,natural,cash_out,1000.00,EUR
2016-01-05,4,natural,cash_out,1000.00,EUR
2016-01-05,1,natural,cash_in,200.00,EUR
2016-01-06,2,legal,cash_out,300.00,EUR
2016-01-06,1,natural,cash_out,30000,JPY
2016-01-06,1,natural,cash_out,1000.00,EUR
2016-01-07,1,natural,cash_out,100.00,USD
2016-01-08,1,natural,cash_out,-1,JPY
`

// results runs the engine over input.
func results(t *testing.T) iter.Seq[commission.Result] {
	t.Helper()
	ops, err := feed.Decode(strings.NewReader(input), feed.Options{Format: feed.CSV})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return commission.NewEngine().Run(ops)
}

func TestWriteText(t *testing.T) {
	var out, errOut bytes.Buffer
	failed, err := WriteText(&out, &errOut, results(t))
	if err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if failed != 1 {
		t.Errorf("WriteText() failed = %d, want 1", failed)
	}
	want := "0.60\n3.00\n0.00\n0.06\n0.90\n0.00\n0.69\n0.30\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("WriteText() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut.String(), "operation 9:") || !strings.Contains(errOut.String(), "negative amount") {
		t.Errorf("WriteText() errors = %q", errOut.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	failed, err := WriteJSON(&out, results(t))
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if failed != 1 {
		t.Errorf("WriteJSON() failed = %d, want 1", failed)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 9 {
		t.Fatalf("WriteJSON() wrote %d lines, want 9", len(lines))
	}
	var first struct {
		Index  int    `json:"index"`
		UserID string `json:"user_id"`
		Fee    string `json:"fee"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid json %q: %v", lines[0], err)
	}
	if first.Index != 0 || first.UserID != "4" || first.Fee != "0.60" {
		t.Errorf("first line = %+v", first)
	}
	if !strings.Contains(lines[8], `"error":`) {
		t.Errorf("failed line = %s, want an error", lines[8])
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(results(t))
	if len(r.Results) != 9 || r.Failed != 1 {
		t.Errorf("NewReport() = %d results, %d failed, want 9, 1", len(r.Results), r.Failed)
	}
	if diff := cmp.Diff([]commission.Currency{commission.EUR, commission.USD, commission.JPY}, r.Currencies()); diff != "" {
		t.Errorf("Currencies() mismatch (-want +got):\n%s", diff)
	}
	if got := r.Totals[commission.EUR].Fixed(); got != "5.25" {
		t.Errorf("EUR total = %s, want 5.25", got)
	}
	if got := r.Counts[commission.Deposit]; got != 1 {
		t.Errorf("deposits = %d, want 1", got)
	}
	if got := r.Totals[commission.USD].Fixed(); got != "0.30" {
		t.Errorf("USD total = %s, want 0.30", got)
	}
	if got := r.Counts[commission.Withdrawal]; got != 7 {
		t.Errorf("withdrawals = %d, want 7", got)
	}
}

func TestReportMarkdown(t *testing.T) {
	src := []byte(ReportMarkdown(NewReport(results(t))))

	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	var tables, rows int
	var headings []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *east.Table:
			tables++
		case *east.TableRow:
			rows++
		case *ast.Heading:
			headings = append(headings, string(n.Text(src)))
		}
		return ast.WalkContinue, nil
	})

	if tables != 2 {
		t.Errorf("report has %d tables, want 2:\n%s", tables, src)
	}
	// 8 fees and 3 currency totals.
	if rows != 11 {
		t.Errorf("report has %d table rows, want 11:\n%s", rows, src)
	}
	if diff := cmp.Diff([]string{"Commission Fees", "Fees", "Totals", "Failures"}, headings); diff != "" {
		t.Errorf("report headings mismatch (-want +got):\n%s", diff)
	}
}

func TestReportMarkdown_NoFailures(t *testing.T) {
	r := NewReport(commission.NewEngine().Run(commission.Seq(nil)))
	got := ReportMarkdown(r)
	if strings.Contains(got, "Failures") || strings.Contains(got, "Totals") {
		t.Errorf("empty report should only have a title:\n%s", got)
	}
}

func TestPretty(t *testing.T) {
	got, err := Pretty("# Commission Fees\n\nsome text\n")
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(got, "Commission Fees") {
		t.Errorf("Pretty() = %q, want the title", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": Text, "json": JSON, "markdown": Markdown, "md": Markdown} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Errorf("ParseFormat(html) should fail")
	}
}

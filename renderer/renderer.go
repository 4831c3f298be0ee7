// Package renderer formats fee results for the command line: plain fee
// lines, JSON lines, or a markdown report.
package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/etnz/commission"
)

// Format is an output format.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON, Markdown:
		return f, nil
	case "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or markdown)", s)
	}
}

// WriteText writes one fee per line, in input order, rounded to two
// decimals. A failed result is written to errw instead, so the line is
// missing from w. It returns the number of failed results.
func WriteText(w, errw io.Writer, results iter.Seq[commission.Result]) (failed int, err error) {
	for r := range results {
		if r.Err != nil {
			failed++
			if _, err := fmt.Fprintf(errw, "operation %d: %v\n", r.Index+1, r.Err); err != nil {
				return failed, err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, r.Fee.Fixed()); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// WriteJSON writes one JSON object per result, failures included.
func WriteJSON(w io.Writer, results iter.Seq[commission.Result]) (failed int, err error) {
	enc := json.NewEncoder(w)
	for r := range results {
		if r.Err != nil {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// Report is the collected outcome of a feed.
type Report struct {
	Results []commission.Result
	Totals  map[commission.Currency]commission.Money // total fee per currency
	Counts  map[commission.OperationType]int
	Failed  int
}

// NewReport collects results.
func NewReport(results iter.Seq[commission.Result]) *Report {
	r := &Report{
		Totals: make(map[commission.Currency]commission.Money),
		Counts: make(map[commission.OperationType]int),
	}
	for res := range results {
		r.Results = append(r.Results, res)
		if res.Err != nil {
			r.Failed++
			continue
		}
		cur := res.Fee.Currency()
		total, ok := r.Totals[cur]
		if !ok {
			total = commission.M(0, cur)
		}
		r.Totals[cur] = total.Add(res.Fee)
		r.Counts[res.Operation.Type]++
	}
	return r
}

// Currencies returns the currencies with a total, in the supported currencies order.
func (r *Report) Currencies() []commission.Currency {
	var list []commission.Currency
	for _, cur := range commission.Currencies() {
		if _, ok := r.Totals[cur]; ok {
			list = append(list, cur)
		}
	}
	return slices.Clip(list)
}

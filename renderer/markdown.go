package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/commission"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the report as a markdown document.
func ReportMarkdown(r *Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Commission Fees")
	doc.PlainText(fmt.Sprintf("%d operations: %d deposits, %d withdrawals, %d failed.",
		len(r.Results), r.Counts[commission.Deposit], r.Counts[commission.Withdrawal], r.Failed))

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err != nil {
			continue
		}
		op := res.Operation
		rows = append(rows, []string{
			strconv.Itoa(res.Index + 1),
			op.Date.String(),
			op.UserID,
			op.UserType.String(),
			op.Type.String(),
			fmt.Sprintf("%s %s", op.Amount.Value().StringFixed(commission.Places), op.Currency()),
			res.Fee.String(),
		})
	}
	if len(rows) > 0 {
		doc.H2("Fees")
		doc.Table(md.TableSet{
			Header: []string{"#", "Date", "User", "User Type", "Operation", "Amount", "Fee"},
			Rows:   rows,
		})
	}

	if curs := r.Currencies(); len(curs) > 0 {
		totals := make([][]string, 0, len(curs))
		for _, cur := range curs {
			totals = append(totals, []string{cur.String(), r.Totals[cur].String()})
		}
		doc.H2("Totals")
		doc.Table(md.TableSet{
			Header: []string{"Currency", "Fees"},
			Rows:   totals,
		})
	}

	// doc only writes to buf on Build, the report is its String.
	var out bytes.Buffer
	out.WriteString(doc.String())
	ConditionalBlock(&out, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Failures\n\n")
		for _, res := range r.Results {
			if res.Err != nil {
				fmt.Fprintf(w, "- operation %d: %v\n", res.Index+1, res.Err)
			}
		}
		fmt.Fprintln(w)
		return r.Failed > 0
	})

	return out.String()
}

// Pretty renders markdown for a terminal.
func Pretty(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

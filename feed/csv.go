package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/etnz/commission"
)

func decodeCSV(r io.Reader) iter.Seq2[commission.Operation, error] {
	return func(yield func(commission.Operation, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // field count is checked per record
		reader.TrimLeadingSpace = true

		first := true
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				var perr *csv.ParseError
				if !errors.As(err, &perr) {
					// not a format error, the reader cannot go on.
					yield(commission.Operation{}, fmt.Errorf("cannot read csv feed: %w", err))
					return
				}
				rerr := &RecordError{Line: perr.StartLine, Err: fmt.Errorf("%w: %w", commission.ErrMalformedRecord, perr.Err)}
				if !yield(commission.Operation{}, rerr) {
					return
				}
				continue
			}

			line, _ := reader.FieldPos(0)
			if first && isHeader(record) {
				first = false
				continue
			}
			first = false

			op, err := parseRecord(record)
			if err != nil {
				err = &RecordError{Line: line, Err: err}
			}
			if !yield(op, err) {
				return
			}
		}
	}
}

// isHeader reports whether record is a column header line.
func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

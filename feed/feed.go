// Package feed decodes operation feeds into commission operations.
//
// Three formats are supported:
//   - csv: six columns in fixed order, no header required:
//     date,user,user type,operation type,amount,currency
//     2014-12-31,4,natural,cash_out,1200.00,EUR
//   - jsonl: one JSON object per line.
//   - json: a JSON document, records are selected with a JSONPath expression
//     (all the elements of a top level array by default).
//
// JSON objects use the keys date, user_id, user_type, operation_type, amount
// and currency. Amounts and user ids can be strings or numbers.
//
// Decoding never stops on a bad record: each record yields either an
// Operation or a *RecordError.
package feed

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/commission"
	"github.com/etnz/commission/date"
)

// Format is an input feed format.
type Format string

const (
	CSV   Format = "csv"
	JSON  Format = "json"
	JSONL Format = "jsonl"
)

// DefaultPath selects all the elements of a top level JSON array.
const DefaultPath = "$[*]"

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, JSONL:
		return f, nil
	case "ndjson":
		return JSONL, nil
	default:
		return "", fmt.Errorf("unknown feed format %q (want csv, json or jsonl)", s)
	}
}

// FormatOf returns the format of a file from its extension.
func FormatOf(filename string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot guess the format of %q: no file extension", filename)
	}
	return ParseFormat(ext)
}

// Options controls decoding.
type Options struct {
	Format Format // guessed from the file extension by ReadFile when empty
	Path   string // JSONPath selecting the records of a json document, DefaultPath when empty
}

// RecordError is a failure to decode one record. Line is the line number
// in csv and jsonl feeds, and the position of the record (starting at 1) in
// json documents.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string { return fmt.Sprintf("record %d: %v", e.Line, e.Err) }

func (e *RecordError) Unwrap() error { return e.Err }

// ReadFile reads the whole file and decodes it.
func ReadFile(filename string, opts Options) (iter.Seq2[commission.Operation, error], error) {
	if opts.Format == "" {
		f, err := FormatOf(filename)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read feed %q: %w", filename, err)
	}
	return Decode(bytes.NewReader(data), opts)
}

// Decode returns the operations of r. csv and jsonl feeds are decoded
// while iterating, and can be iterated only once. A json document is decoded
// at once, an invalid document or path returns an error.
func Decode(r io.Reader, opts Options) (iter.Seq2[commission.Operation, error], error) {
	switch opts.Format {
	case CSV:
		return decodeCSV(r), nil
	case JSONL:
		return decodeJSONL(r), nil
	case JSON:
		path := opts.Path
		if path == "" {
			path = DefaultPath
		}
		return decodeJSON(r, path)
	default:
		return nil, fmt.Errorf("unknown feed format %q", opts.Format)
	}
}

// Collect decodes all the operations of ops. It returns the valid operations
// and the record errors, in input order.
func Collect(ops iter.Seq2[commission.Operation, error]) ([]commission.Operation, []error) {
	var valid []commission.Operation
	var errs []error
	for op, err := range ops {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, op)
	}
	return valid, errs
}

// parseRecord parses the six fields of a record, in the csv column order.
func parseRecord(fields []string) (commission.Operation, error) {
	if len(fields) != 6 {
		return commission.Operation{}, fmt.Errorf("%w: want 6 fields, got %d", commission.ErrMalformedRecord, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	for i, name := range []string{"date", "user", "user type", "operation type", "amount", "currency"} {
		if fields[i] == "" {
			return commission.Operation{}, fmt.Errorf("%w: missing %s", commission.ErrMalformedRecord, name)
		}
	}

	on, err := date.Parse(fields[0])
	if err != nil {
		return commission.Operation{}, fmt.Errorf("%w: %w", commission.ErrMalformedRecord, err)
	}
	userType, err := commission.ParseUserType(fields[2])
	if err != nil {
		return commission.Operation{}, err
	}
	opType, err := commission.ParseOperationType(fields[3])
	if err != nil {
		return commission.Operation{}, err
	}
	cur, err := commission.ParseCurrency(fields[5])
	if err != nil {
		return commission.Operation{}, err
	}
	amount, err := commission.ParseMoney(fields[4], cur)
	if err != nil {
		return commission.Operation{}, fmt.Errorf("%w: invalid amount %q: %w", commission.ErrMalformedRecord, fields[4], err)
	}

	op := commission.NewOperation(on, fields[1], userType, opType, amount)
	if err := op.Validate(); err != nil {
		return commission.Operation{}, err
	}
	return op, nil
}

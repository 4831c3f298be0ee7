package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/commission"
)

// jrecord is a record as read from a json feed. Values are kept raw so that
// numbers and strings are both accepted, and missing fields detected.
type jrecord struct {
	Date          json.RawMessage `json:"date"`
	UserID        json.RawMessage `json:"user_id"`
	UserType      json.RawMessage `json:"user_type"`
	OperationType json.RawMessage `json:"operation_type"`
	Amount        json.RawMessage `json:"amount"`
	Currency      json.RawMessage `json:"currency"`
}

// fields returns the record values in the csv column order.
func (j jrecord) fields() ([]string, error) {
	raws := []json.RawMessage{j.Date, j.UserID, j.UserType, j.OperationType, j.Amount, j.Currency}
	fields := make([]string, len(raws))
	for i, raw := range raws {
		s, err := scalar(raw)
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}
	return fields, nil
}

// scalar returns the text of a json string or number, "" for a missing value or null.
func scalar(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("want a string or a number, got %s", raw)
	}
	return n.String(), nil
}

// parseJSONRecord parses one json object.
func parseJSONRecord(data []byte) (commission.Operation, error) {
	var j jrecord
	if err := json.Unmarshal(data, &j); err != nil {
		return commission.Operation{}, fmt.Errorf("%w: %w", commission.ErrMalformedRecord, err)
	}
	fields, err := j.fields()
	if err != nil {
		return commission.Operation{}, fmt.Errorf("%w: %w", commission.ErrMalformedRecord, err)
	}
	return parseRecord(fields)
}

func decodeJSONL(r io.Reader) iter.Seq2[commission.Operation, error] {
	return func(yield func(commission.Operation, error) bool) {
		scanner := bufio.NewScanner(r)
		i := 0
		for scanner.Scan() {
			i++
			line := scanner.Bytes()
			// Start simply ignoring empty lines.
			if len(strings.TrimSpace(string(line))) == 0 {
				continue
			}
			op, err := parseJSONRecord(line)
			if err != nil {
				err = &RecordError{Line: i, Err: err}
			}
			if !yield(op, err) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(commission.Operation{}, fmt.Errorf("cannot read jsonl feed: %w", err))
		}
	}
}

func decodeJSON(r io.Reader, path string) (iter.Seq2[commission.Operation, error], error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep amounts exact
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid json feed: %w", err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("invalid json path %q: %w", path, err)
	}
	// jsonpath returns either a list of matches or a single one.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	return func(yield func(commission.Operation, error) bool) {
		for i, jrec := range jlist {
			var op commission.Operation
			data, err := json.Marshal(jrec)
			if err == nil {
				if _, isObject := jrec.(map[string]any); !isObject {
					err = fmt.Errorf("%w: want an object, got %s", commission.ErrMalformedRecord, data)
				} else {
					op, err = parseJSONRecord(data)
				}
			}
			if err != nil {
				err = &RecordError{Line: i + 1, Err: err}
			}
			if !yield(op, err) {
				return
			}
		}
	}, nil
}

package commission

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject is a JSON object that keeps its fields in insertion order.
// Its zero value is an empty object.
type orderedObject struct {
	fields [][]byte // encoded `"key":value` pairs
	err    error
}

// Set appends key with the JSON encoding of value.
func (o *orderedObject) Set(key string, value any) {
	if o.err != nil {
		return
	}
	v, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot encode field %q: %w", key, err)
		return
	}
	k, _ := json.Marshal(key)
	field := append(k, ':')
	o.fields = append(o.fields, append(field, v...))
}

// Merge appends the fields of v, that must encode as a JSON object.
func (o *orderedObject) Merge(v any) {
	if o.err != nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		o.err = fmt.Errorf("cannot encode merged object: %w", err)
		return
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' || data[len(data)-1] != '}' {
		o.err = fmt.Errorf("cannot merge %s: not an object", data)
		return
	}
	if inner := bytes.TrimSpace(data[1 : len(data)-1]); len(inner) > 0 {
		o.fields = append(o.fields, inner)
	}
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	b.Write(bytes.Join(o.fields, []byte{','}))
	b.WriteByte('}')
	return b.Bytes(), nil
}

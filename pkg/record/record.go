// Package record provides the loosely typed record shape returned by the
// content API. Records are decoded from JSON and keyed by field name.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cast"
)

// Record is a single upstream entity decoded from JSON.
type Record map[string]any

// ID returns the record identifier in string form.
func (r Record) ID() string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := r[key]; ok && v != nil {
			return Format(v)
		}
	}
	return ""
}

// Value returns the raw value stored under field.
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// String returns the string form of field, or "" when the field is absent or null.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return Format(v)
}

// Strings returns the elements of a list-valued field in string form. A
// scalar field yields a single element; an absent or null field yields none.
func (r Record) Strings(field string) []string {
	switch t := r[field].(type) {
	case nil:
		return nil
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if v != nil {
				out = append(out, Format(v))
			}
		}
		return out
	}
	return []string{r.String(field)}
}

// Bool reports the truthiness of field. Upstream flags arrive as bools,
// 0/1 numbers, or "true"/"1" strings.
func (r Record) Bool(field string) bool {
	b, err := cast.ToBoolE(r[field])
	if err != nil {
		return false
	}
	return b
}

// Decode unmarshals a JSON object into a Record using json.Number for numerics
// so identifiers survive without float rounding.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DecodeList unmarshals a JSON array of objects into records.
func DecodeList(data []byte) ([]Record, error) {
	var recs []Record
	if err := unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Format renders a field value the way it is displayed and searched:
// numbers in their shortest form, times as RFC 3339, nil as "".
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

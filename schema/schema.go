// Package schema has models and constants shared by all parts of confcast.
package schema

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ValueKind identifies the type held by a Value.
type ValueKind int

// All value kinds produced by the type decoders.
const (
	NullKind ValueKind = iota
	IntKind
	StringKind
	DateKind
)

// String returns the lowercase name of the kind.
func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case StringKind:
		return "string"
	case DateKind:
		return "date"
	default:
		return "null"
	}
}

// Value is a decoded field value. The zero Value is null.
type Value struct {
	Kind ValueKind
	Int  int64
	Str  string
	Date time.Time
}

// NullValue returns an absent value.
func NullValue() Value { return Value{} }

// IntValue wraps an integer.
func IntValue(n int64) Value { return Value{Kind: IntKind, Int: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: StringKind, Str: s} }

// DateValue wraps a calendar date. The time of day is dropped.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{Kind: DateKind, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.Kind == NullKind }

// String renders the value for delimited output. Null renders as empty.
func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case StringKind:
		return v.Str
	case DateKind:
		return v.Date.Format(RecordLayout)
	default:
		return ""
	}
}

// MarshalJSON renders ints as numbers, dates as YYYY-MM-DD and null as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case IntKind:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case StringKind, DateKind:
		return json.Marshal(v.String())
	default:
		return []byte("null"), nil
	}
}

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is a recovered dump record. Fields follow schema order.
type Record struct {
	Fields []Field
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Strings returns the rendered field values in order.
func (r Record) Strings() []string {
	values := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		values[i] = f.Value.String()
	}
	return values
}

// MarshalJSON renders the record as an object whose keys keep field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

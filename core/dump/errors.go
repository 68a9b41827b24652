package dump

import "fmt"

// SchemaError reports a schema line that cannot be turned into a field.
type SchemaError struct {
	Line   int // 1-based line number, 0 when the error is not tied to a line
	Text   string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema line %d %q: %s", e.Line, e.Text, e.Reason)
}

// DecodeError reports a raw token that cannot be converted to its field type.
type DecodeError struct {
	Field  string
	Raw    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s %q: %s", e.Field, e.Raw, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a record block whose shape does not fit the
// expected layout.
type MalformedRecordError struct {
	Record   int // 0-based index of the block or match, -1 when not tied to one
	Strategy string
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record (%s)", e.Strategy)
	if e.Record >= 0 {
		msg = fmt.Sprintf("malformed record %d (%s)", e.Record, e.Strategy)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

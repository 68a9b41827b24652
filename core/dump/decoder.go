package dump

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/confcast/schema"
)

// Decoder converts a raw dump token into a typed value.
type Decoder interface {
	Kind() schema.ValueKind
	Decode(raw string) (schema.Value, error)
}

// typePatterns maps database type spellings to decoders. First match wins.
var typePatterns = []struct {
	re      *regexp.Regexp
	decoder Decoder
}{
	{regexp.MustCompile(`NOT NULL NUMBER`), IntegerDecoder{}},
	{regexp.MustCompile(`VARCHAR2\(\d+\)`), StringDecoder{}},
	{regexp.MustCompile(`DATE`), DateDecoder{}},
}

// DecoderFor returns the decoder for a type description, or nil when no
// known spelling matches.
func DecoderFor(typeDesc string) Decoder {
	for _, p := range typePatterns {
		if p.re.MatchString(typeDesc) {
			return p.decoder
		}
	}
	return nil
}

// IntegerDecoder parses base-10 integers.
type IntegerDecoder struct{}

// Kind implements Decoder.
func (IntegerDecoder) Kind() schema.ValueKind { return schema.IntKind }

// Decode implements Decoder.
func (IntegerDecoder) Decode(raw string) (schema.Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "not a base-10 integer", Err: err}
	}
	return schema.IntValue(n), nil
}

// StringDecoder keeps the token as trimmed text.
type StringDecoder struct{}

// Kind implements Decoder.
func (StringDecoder) Kind() schema.ValueKind { return schema.StringKind }

// Decode implements Decoder.
func (StringDecoder) Decode(raw string) (schema.Value, error) {
	return schema.StringValue(strings.TrimSpace(raw)), nil
}

// PivotYear is the last two-digit year mapped into the 2000s.
const PivotYear = 50

var months = map[string]time.Month{
	"JAN": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DEC": time.December,
}

// DateDecoder parses D-MON-YY dates such as 15-JAN-99.
type DateDecoder struct{}

// Kind implements Decoder.
func (DateDecoder) Kind() schema.ValueKind { return schema.DateKind }

// Decode implements Decoder.
func (DateDecoder) Decode(raw string) (schema.Value, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "expected D-MON-YY"}
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "bad day", Err: err}
	}
	month, ok := months[strings.ToUpper(parts[1])]
	if !ok {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "unknown month " + strconv.Quote(parts[1])}
	}
	yy, err := strconv.Atoi(parts[2])
	if err != nil {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "bad year", Err: err}
	}
	if yy < 0 || yy > 99 {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "year must have two digits"}
	}

	year := 1900 + yy
	if yy <= PivotYear {
		year = 2000 + yy
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day || t.Month() != month {
		return schema.Value{}, &DecodeError{Raw: raw, Reason: "not a calendar date"}
	}
	return schema.DateValue(t), nil
}

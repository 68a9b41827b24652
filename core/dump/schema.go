package dump

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/huangsam/confcast/schema"
)

// Field is one schema entry. Decoder is nil when the type matched no known
// spelling and unknown types were allowed.
type Field struct {
	Name    string
	Type    string
	Decoder Decoder
}

// Decode converts raw through the field's decoder.
func (f Field) Decode(raw string) (schema.Value, error) {
	if f.Decoder == nil {
		return schema.Value{}, &DecodeError{Field: f.Name, Raw: raw, Reason: "no decoder for type " + f.Type}
	}
	v, err := f.Decoder.Decode(raw)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Field = f.Name
			return schema.Value{}, de
		}
		return schema.Value{}, &DecodeError{Field: f.Name, Raw: raw, Reason: "decode failed", Err: err}
	}
	return v, nil
}

// Schema is the ordered list of fields in a dump record.
type Schema struct {
	Fields []Field
}

// SchemaOptions tunes LoadSchema.
type SchemaOptions struct {
	// AllowUnknownTypes keeps fields whose type has no decoder. Decoding such
	// a field fails with a DecodeError.
	AllowUnknownTypes bool
}

// LoadSchema reads one "<name> <type description>" pair per line. Blank lines
// are ignored and field order follows line order.
func LoadSchema(r io.Reader, opts SchemaOptions) (*Schema, error) {
	s := &Schema{}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, typeDesc, ok := splitSchemaLine(line)
		if !ok {
			return nil, &SchemaError{Line: lineNo, Text: line, Reason: "expected a field name followed by a type description"}
		}
		if _, dup := seen[name]; dup {
			return nil, &SchemaError{Line: lineNo, Text: line, Reason: "duplicate field name " + name}
		}
		seen[name] = struct{}{}

		decoder := DecoderFor(typeDesc)
		if decoder == nil && !opts.AllowUnknownTypes {
			return nil, &SchemaError{Line: lineNo, Text: line, Reason: "unknown type " + typeDesc}
		}
		s.Fields = append(s.Fields, Field{Name: name, Type: typeDesc, Decoder: decoder})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(s.Fields) == 0 {
		return nil, &SchemaError{Reason: "no fields defined"}
	}
	return s, nil
}

// splitSchemaLine separates the first whitespace-delimited word from the rest.
func splitSchemaLine(line string) (string, string, bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return "", "", false
	}
	rest := strings.TrimSpace(line[idx:])
	if rest == "" {
		return "", "", false
	}
	return line[:idx], rest, true
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.Fields) }

// Names returns the field names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of name, or -1.
func (s *Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FirstOfKind returns the first field whose decoder produces kind.
func (s *Schema) FirstOfKind(kind schema.ValueKind) (Field, bool) {
	for _, f := range s.Fields {
		if f.Decoder != nil && f.Decoder.Kind() == kind {
			return f, true
		}
	}
	return Field{}, false
}

// String renders the schema back into its line format.
func (s *Schema) String() string {
	var sb strings.Builder
	for _, f := range s.Fields {
		sb.WriteString(f.Name)
		sb.WriteByte(' ')
		sb.WriteString(f.Type)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// build decodes raw tokens into a record. A nil token marks an absent field.
func (s *Schema) build(tokens []*string) (schema.Record, error) {
	rec := schema.Record{Fields: make([]schema.Field, len(s.Fields))}
	for i, f := range s.Fields {
		rec.Fields[i].Name = f.Name
		if tokens[i] == nil {
			continue
		}
		v, err := f.Decode(*tokens[i])
		if err != nil {
			return schema.Record{}, err
		}
		rec.Fields[i].Value = v
	}
	return rec, nil
}

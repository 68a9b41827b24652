package dump

import (
	"errors"
	"strings"
	"testing"

	"github.com/huangsam/confcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confSchema = `CONF_ID                        NOT NULL NUMBER
PRES_ID                        NOT NULL NUMBER
CONF_NAME                               VARCHAR2(1024)
CONF_NAME_SHORT                         VARCHAR2(100)
CONF_START                              DATE
CONF_CATEGORY                           VARCHAR2(8)
CONF_DESCRIPTION_CATEGORY               VARCHAR2(1024)
CONF_CITY                               VARCHAR2(1024)
COUNTRY                                 VARCHAR2(1024)
CONF_WEB                                VARCHAR2(1024)
PRES_TITLE                              VARCHAR2(1024)
PRES_CATEGORY                           VARCHAR2(8)
PRES_DESCRIPTION_CATEGORY               VARCHAR2(1024)
`

func loadConfSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := LoadSchema(strings.NewReader(confSchema), SchemaOptions{})
	require.NoError(t, err)
	return s
}

func TestLoadSchema(t *testing.T) {
	s := loadConfSchema(t)
	require.Equal(t, 13, s.Len())
	assert.Equal(t, "CONF_ID", s.Fields[0].Name)
	assert.Equal(t, "NOT NULL NUMBER", s.Fields[0].Type)
	assert.Equal(t, schema.IntKind, s.Fields[0].Decoder.Kind())
	assert.Equal(t, schema.DateKind, s.Fields[4].Decoder.Kind())
	assert.Equal(t, 4, s.Index("CONF_START"))
	assert.Equal(t, -1, s.Index("MISSING"))

	f, ok := s.FirstOfKind(schema.DateKind)
	require.True(t, ok)
	assert.Equal(t, "CONF_START", f.Name)
}

func TestLoadSchemaRoundTrip(t *testing.T) {
	s := loadConfSchema(t)

	var expected []string
	for line := range strings.SplitSeq(strings.TrimSpace(confSchema), "\n") {
		expected = append(expected, strings.Fields(line)[0])
	}
	assert.Equal(t, expected, s.Names())

	again, err := LoadSchema(strings.NewReader(s.String()), SchemaOptions{})
	require.NoError(t, err)
	assert.Equal(t, s.Names(), again.Names())
	assert.Equal(t, s.String(), again.String())
}

func TestLoadSchemaSkipsBlankLines(t *testing.T) {
	s, err := LoadSchema(strings.NewReader("\nA NOT NULL NUMBER\r\n\n  \nB DATE\n"), SchemaOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, s.Names())
	assert.Equal(t, "DATE", s.Fields[1].Type)
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		reason string
	}{
		{"name only", "A NOT NULL NUMBER\nB\n", 2, "expected a field name"},
		{"unknown type", "A NOT NULL NUMBER\nB BLOB\n", 2, "unknown type BLOB"},
		{"duplicate", "A DATE\nA DATE\n", 2, "duplicate field name A"},
		{"empty", "\n\n", 0, "no fields defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchema(strings.NewReader(tt.input), SchemaOptions{})
			var se *SchemaError
			require.True(t, errors.As(err, &se), "expected SchemaError, got %v", err)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Reason, tt.reason)
		})
	}
}

func TestLoadSchemaAllowUnknownTypes(t *testing.T) {
	s, err := LoadSchema(strings.NewReader("A NOT NULL NUMBER\nB BLOB\n"), SchemaOptions{AllowUnknownTypes: true})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Nil(t, s.Fields[1].Decoder)

	_, err = s.build([]*string{strp("1"), strp("payload")})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "B", de.Field)
}

func strp(s string) *string { return &s }

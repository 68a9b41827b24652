package dump

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/confcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPositional(t *testing.T) {
	s := loadConfSchema(t)

	records, skipped, err := RecoverPositional(context.Background(), sqlDump(ichep, leptonPhoton), s, Options{Workers: 2})
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, s.Names(), first.Names())
	assert.Equal(t, []string{
		"1001",
		"5001",
		"International Conference on High Energy Physics",
		"ICHEP 2014",
		"2014-07-02",
		"CONF",
		"Conference",
		"Valencia",
		"Spain",
		"",
		"Search for new physics in\ndilepton final states",
		"TALK",
		"Plenary talk",
	}, first.Strings())

	title, ok := first.Get("PRES_TITLE")
	require.True(t, ok)
	assert.Equal(t, schema.StringValue("Search for new physics in\ndilepton final states"), title)
	web, _ := first.Get("CONF_WEB")
	assert.Equal(t, schema.StringValue(""), web)

	second := records[1]
	start, _ := second.Get("CONF_START")
	assert.Equal(t, schema.DateValue(time.Date(2013, 6, 24, 0, 0, 0, 0, time.UTC)), start)
	city, _ := second.Get("CONF_CITY")
	assert.Equal(t, schema.StringValue("San Francisco, CA"), city)
}

func TestRecoverPositionalLongTitle(t *testing.T) {
	s := loadConfSchema(t)
	block := ichep
	block.Title = []string{"Measurement of the production cross section", "of top quark pairs in association", "with a W or Z boson"}

	records, _, err := RecoverPositional(context.Background(), sqlDump(block), s, Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	title, _ := records[0].Get("PRES_TITLE")
	assert.Equal(t, strings.Join(block.Title, "\n"), title.Str)
	category, _ := records[0].Get("PRES_CATEGORY")
	assert.Equal(t, "TALK", category.Str)
}

func TestRecoverPositionalNonASCIIShortName(t *testing.T) {
	s := loadConfSchema(t)
	block := leptonPhoton
	block.Name = "Rencontres de Physique de la Vallée d'Aoste"
	block.Short = "Genève-Zürich 2015"
	block.City = "La Thuile"
	block.Country = "Italy"

	// fmt pads to 100 characters, not 100 bytes
	records, _, err := RecoverPositional(context.Background(), sqlDump(ichep, block), s, Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	short, _ := records[1].Get("CONF_NAME_SHORT")
	assert.Equal(t, "Genève-Zürich 2015", short.Str)
	start, _ := records[1].Get("CONF_START")
	assert.Equal(t, schema.DateValue(time.Date(2013, 6, 24, 0, 0, 0, 0, time.UTC)), start)
	name, _ := records[1].Get("CONF_NAME")
	assert.Equal(t, block.Name, name.Str)
}

func TestRecoverPositionalCRLF(t *testing.T) {
	s := loadConfSchema(t)
	text := strings.ReplaceAll(sqlDump(ichep), "\n", "\r\n")

	records, _, err := RecoverPositional(context.Background(), text, s, Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	desc, _ := records[0].Get("PRES_DESCRIPTION_CATEGORY")
	assert.Equal(t, "Plenary talk", desc.Str)
}

func TestRecoverPositionalSchemaWidth(t *testing.T) {
	s, err := LoadSchema(strings.NewReader("A NOT NULL NUMBER\nB DATE\n"), SchemaOptions{})
	require.NoError(t, err)

	_, _, err = RecoverPositional(context.Background(), sqlDump(ichep), s, Options{})
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Reason, "13")
}

func TestRecoverPositionalDecodeError(t *testing.T) {
	s := loadConfSchema(t)
	bad := leptonPhoton
	bad.Start = "24-JUX-13"

	_, _, err := RecoverPositional(context.Background(), sqlDump(ichep, bad), s, Options{})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "CONF_START", de.Field)
	assert.Contains(t, de.Reason, "unknown month")

	records, skipped, err := RecoverPositional(context.Background(), sqlDump(ichep, bad), s, Options{Lenient: true})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 1)
}

func TestRecoverPositionalReportsEarliestError(t *testing.T) {
	s := loadConfSchema(t)
	var blocks []confBlock
	for i := range 20 {
		b := leptonPhoton
		b.ConfID = 2000 + i
		if i == 7 || i == 15 {
			b.Start = fmt.Sprintf("%d-FOO-13", i)
		}
		blocks = append(blocks, b)
	}

	_, _, err := RecoverPositional(context.Background(), sqlDump(blocks...), s, Options{Workers: 8})
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "7-FOO-13", de.Raw)
}

func TestRecoverPositionalWorkersKeepOrder(t *testing.T) {
	s := loadConfSchema(t)
	var blocks []confBlock
	for i := range 50 {
		b := leptonPhoton
		b.ConfID = 3000 + i
		blocks = append(blocks, b)
	}
	text := sqlDump(blocks...)

	serial, _, err := RecoverPositional(context.Background(), text, s, Options{Workers: 1})
	require.NoError(t, err)
	parallel, _, err := RecoverPositional(context.Background(), text, s, Options{Workers: 8})
	require.NoError(t, err)

	require.Len(t, serial, 50)
	assert.Equal(t, serial, parallel)
	for i, rec := range parallel {
		id, _ := rec.Get("CONF_ID")
		assert.Equal(t, int64(3000+i), id.Int)
	}
}

func TestRecoverPositionalCanceled(t *testing.T) {
	s := loadConfSchema(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := RecoverPositional(ctx, sqlDump(ichep), s, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

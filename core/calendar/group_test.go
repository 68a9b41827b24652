package calendar

import (
	"testing"
	"time"

	"github.com/huangsam/confcast/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conf(id int64, date time.Time) schema.Record {
	return schema.Record{Fields: []schema.Field{
		{Name: "CONF_ID", Value: schema.IntValue(id)},
		{Name: "CONF_START", Value: schema.DateValue(date)},
	}}
}

func ids(records []schema.Record) []int64 {
	out := make([]int64, len(records))
	for i, rec := range records {
		v, _ := rec.Get("CONF_ID")
		out[i] = v.Int
	}
	return out
}

func TestSortByDate(t *testing.T) {
	records := []schema.Record{
		conf(1, day(2014, 3, 1)),
		conf(2, day(2013, 5, 1)),
		conf(3, day(2014, 3, 1)),
		conf(4, day(2013, 1, 9)),
	}
	require.NoError(t, SortByDate(records, "CONF_START"))
	assert.Equal(t, []int64{4, 2, 1, 3}, ids(records))
}

func TestSortByDateRejectsBadField(t *testing.T) {
	tests := []struct {
		name   string
		record schema.Record
		field  string
	}{
		{"missing field", conf(1, day(2014, 1, 1)), "CONF_END"},
		{"not a date", conf(1, day(2014, 1, 1)), "CONF_ID"},
		{"null date", schema.Record{Fields: []schema.Field{{Name: "CONF_START"}}}, "CONF_START"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SortByDate([]schema.Record{tt.record}, tt.field)
			assert.Error(t, err)
			_, err = GroupByBucket([]schema.Record{tt.record}, tt.field, Custom{})
			assert.Error(t, err)
		})
	}
}

func TestGroupByBucket(t *testing.T) {
	records := []schema.Record{
		conf(1, day(2013, 12, 31)),
		conf(2, day(2013, 1, 2)),
		conf(3, day(2013, 12, 25)),
		conf(4, day(2013, 1, 7)),
		conf(5, day(2014, 1, 1)),
	}

	groups, err := GroupByBucket(records, "CONF_START", Custom{})
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, schema.Bucket{Year: 2013, Week: 1}, groups[0].Bucket)
	assert.Equal(t, []int64{2, 4}, ids(groups[0].Records))
	assert.Equal(t, schema.Bucket{Year: 2013, Week: 52}, groups[1].Bucket)
	assert.Equal(t, []int64{1, 3}, ids(groups[1].Records))
	assert.Equal(t, schema.Bucket{Year: 2014, Week: 1}, groups[2].Bucket)
}

func TestGroupByBucketISO(t *testing.T) {
	records := []schema.Record{
		conf(1, day(2013, 12, 31)),
		conf(2, day(2014, 1, 1)),
	}
	groups, err := GroupByBucket(records, "CONF_START", ISO{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, schema.Bucket{Year: 2014, Week: 1}, groups[0].Bucket)
	assert.Len(t, groups[0].Records, 2)
}

func TestGroupByBucketEmpty(t *testing.T) {
	groups, err := GroupByBucket(nil, "CONF_START", Custom{})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

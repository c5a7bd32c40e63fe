package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(mustDate(t, "2011-01-01"), mustDate(t, "2011-01-01"))
	require.NoError(t, err)
	assert.True(t, r.Contains(mustDate(t, "2011-01-01")))

	_, err = NewDateRange(mustDate(t, "2011-02-01"), mustDate(t, "2011-01-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestDateRange_ContainsIgnoresTimeOfDay(t *testing.T) {
	r, err := NewDateRange(mustDate(t, "2011-01-01"), mustDate(t, "2011-01-31"))
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2011, 1, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(mustDate(t, "2011-02-01")))
	assert.False(t, r.Contains(mustDate(t, "2010-12-31")))
}

func TestDateRange_Clamp(t *testing.T) {
	bounds := DateRange{Start: mustDate(t, "2011-01-01"), End: mustDate(t, "2012-12-31")}

	tests := []struct {
		name      string
		in        DateRange
		wantStart string
		wantEnd   string
	}{
		{"inside", DateRange{mustDate(t, "2011-05-01"), mustDate(t, "2011-06-01")}, "2011-05-01", "2011-06-01"},
		{"overlaps both", DateRange{mustDate(t, "2010-01-01"), mustDate(t, "2013-01-01")}, "2011-01-01", "2012-12-31"},
		{"overlaps start", DateRange{mustDate(t, "2010-06-01"), mustDate(t, "2011-02-01")}, "2011-01-01", "2011-02-01"},
		{"before is kept", DateRange{mustDate(t, "2009-01-01"), mustDate(t, "2009-02-01")}, "2009-01-01", "2009-02-01"},
		{"after is kept", DateRange{mustDate(t, "2014-01-01"), mustDate(t, "2014-02-01")}, "2014-01-01", "2014-02-01"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.in.Clamp(bounds)
			assert.Equal(t, test.wantStart, got.Start.Format(DateLayout))
			assert.Equal(t, test.wantEnd, got.End.Format(DateLayout))
			assert.False(t, got.Start.After(got.End))
		})
	}
}

func TestDateRange_String(t *testing.T) {
	r := DateRange{Start: mustDate(t, "2011-01-01"), End: mustDate(t, "2011-03-31")}
	assert.Equal(t, "2011-01-01_2011-03-31", r.String())
}

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt\n"

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rides.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRideRecordsFromFile(t *testing.T) {
	// Arrange
	content := header +
		"1,2011-01-01,1,0,1,0,0,6,0,1,0.24,0.2879,0.81,0,3,13,16\n" +
		"2,2011-01-01,1,0,1,1,0,6,0,2,0.22,0.2727,0.8,0.0896,8,32,40\n"
	path := createTempFile(t, content)

	// Act
	records, err := ReadRideRecordsFromFile(path)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "2011-01-01", first.Date.Format("2006-01-02"))
	assert.Equal(t, 0, first.Hour)
	assert.Equal(t, 6, first.Weekday)
	assert.Equal(t, 1, first.Season)
	assert.Equal(t, 1, first.WeatherCondition)
	assert.Equal(t, 3, first.Casual)
	assert.Equal(t, 13, first.Registered)
	assert.Equal(t, 16, first.Total)
	assert.InDelta(t, 0.24, first.Temp, 1e-9)
	assert.InDelta(t, 0.81, first.Humidity, 1e-9)

	assert.Equal(t, 1, records[1].Hour)
	assert.Equal(t, 2, records[1].WeatherCondition)
	assert.InDelta(t, 0.0896, records[1].WindSpeed, 1e-9)
}

func TestReadRideRecordsFromCSV_MissingColumn(t *testing.T) {
	content := "dteday,hr,weekday,season,weathersit,casual,registered\n2011-01-01,0,6,1,1,3,13\n"

	_, err := ReadRideRecordsFromCSV(strings.NewReader(content))

	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadRideRecordsFromCSV_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"total mismatch", "1,2011-01-01,1,0,1,0,0,6,0,1,0.24,0.2879,0.81,0,3,13,17\n"},
		{"bad hour", "1,2011-01-01,1,0,1,24,0,6,0,1,0.24,0.2879,0.81,0,3,13,16\n"},
		{"bad season", "1,2011-01-01,5,0,1,0,0,6,0,1,0.24,0.2879,0.81,0,3,13,16\n"},
		{"bad weather", "1,2011-01-01,1,0,1,0,0,6,0,0,0.24,0.2879,0.81,0,3,13,16\n"},
		{"bad date", "1,01/01/2011,1,0,1,0,0,6,0,1,0.24,0.2879,0.81,0,3,13,16\n"},
		{"blank temp", "1,2011-01-01,1,0,1,0,0,6,0,1,,0.2879,0.81,0,3,13,16\n"},
		{"non-numeric hum", "1,2011-01-01,1,0,1,0,0,6,0,1,0.24,0.2879,abc,0,3,13,16\n"},
		{"infinite windspeed", "1,2011-01-01,1,0,1,0,0,6,0,1,0.24,0.2879,0.81,+Inf,3,13,16\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadRideRecordsFromCSV(strings.NewReader(header + test.row))
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestReadRideRecordsFromFile_NotFound(t *testing.T) {
	_, err := ReadRideRecordsFromFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

package vitals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_TruncatesFractionalBpm(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("timestamp,bpm\n2024-01-01 10:00:00,72.9\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 72, rows[0].Bpm)
	assert.Equal(t, StatusNormal, Classify(rows[0].Bpm, nil))
}

func TestParseCSV_SkipsInvalidRows(t *testing.T) {
	csv := "timestamp,bpm\n" +
		"2024-01-01 10:00:00,70\n" +
		",75\n" + // missing timestamp
		"2024-01-01 10:02:00,\n" + // missing bpm
		"2024-01-01 10:03:00,80\n" +
		"2024-01-01 10:04:00,not-a-number\n" +
		"2024-01-01 10:05:00,85\n" +
		"2024-01-01 10:06:00,90\n" +
		"2024-01-01 10:07:00,95\n"

	rows, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestParseCSV_HeaderSynonyms(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"canonical", "timestamp,bpm"},
		{"short forms", "ts,hr"},
		{"alternate spellings", "datetime,heart_rate"},
		{"mixed case with spaces", " Time , HeartRate "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseCSV(strings.NewReader(tt.header + "\n2024-01-01 10:00:00,70\n"))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "2024-01-01 10:00:00", rows[0].Timestamp)
			assert.Equal(t, 70, rows[0].Bpm)
		})
	}
}

func TestParseCSV_Label(t *testing.T) {
	csv := "timestamp,bpm,label\n" +
		"2024-01-01 10:00:00,70,1.0\n" +
		"2024-01-01 10:01:00,75,\n" +
		"2024-01-01 10:02:00,80,junk\n"

	rows, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].Label)
	assert.Equal(t, 1, *rows[0].Label)
	// Missing and unparseable labels store as absent, not as an error.
	assert.Nil(t, rows[1].Label)
	assert.Nil(t, rows[2].Label)
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("timestamp,label\n2024-01-01,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = ParseCSV(strings.NewReader("bpm\n70\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestParseCSV_EmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("timestamp,bpm\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

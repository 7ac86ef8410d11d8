package vitals

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

var (
	ErrEmptyFile      = errors.New("file is empty")
	ErrMissingColumns = errors.New("csv must include timestamp and bpm columns (timestamp/ts/time/datetime + bpm/heart_rate/heartrate/hr, label optional)")
)

// Row is one accepted sample from a CSV import. Label is nil when the file
// carries no label column or the cell did not parse.
type Row struct {
	Timestamp string
	Bpm       int
	Label     *int
}

// Accepted header spellings per logical field, in resolution order. Matching
// is case-insensitive after trimming.
var headerSynonyms = map[string][]string{
	"timestamp": {"timestamp", "ts", "time", "datetime"},
	"bpm":       {"bpm", "heart_rate", "heartrate", "hr"},
	"label":     {"label"},
}

type columnMap struct {
	timestamp int
	bpm       int
	label     int
}

func resolveColumns(header []string) columnMap {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	find := func(field string) int {
		for _, name := range headerSynonyms[field] {
			if i, ok := index[name]; ok {
				return i
			}
		}
		return -1
	}

	return columnMap{
		timestamp: find("timestamp"),
		bpm:       find("bpm"),
		label:     find("label"),
	}
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ParseCSV decodes a comma-delimited upload with a header row into accepted
// rows. The header is resolved once against the synonym table into a fixed
// column mapping; rows missing a timestamp or bpm value, or whose bpm does
// not parse as a number, are skipped. Numeric values are truncated to
// integers, not rounded.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	cols := resolveColumns(header)
	if cols.timestamp < 0 || cols.bpm < 0 {
		return nil, ErrMissingColumns
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged or malformed line: skip it, keep the batch going.
			continue
		}

		ts := cell(record, cols.timestamp)
		bpmRaw := cell(record, cols.bpm)
		if ts == "" || bpmRaw == "" {
			continue
		}

		bpmF, err := strconv.ParseFloat(bpmRaw, 64)
		if err != nil {
			continue
		}

		row := Row{Timestamp: ts, Bpm: int(bpmF)}

		if raw := cell(record, cols.label); raw != "" {
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				label := int(f)
				row.Label = &label
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// internal/app/system/csvutil/csvutil.go

// Package csvutil pre-scans uploaded CSV files into normalized rows
// before any database work happens. A pre-scan never writes; systemic
// problems (unreadable file, no usable rows) are returned as errors,
// while per-row problems are collected in RowError lists so the caller
// can report them without aborting the batch.
package csvutil

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Upload size and row limits for CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)

// ErrNoRows is returned when a file contains a header but no data rows,
// or nothing at all.
var ErrNoRows = errors.New("csvutil: no data rows in file")

// RowError describes one rejected row. Line is 1-based and counts data
// rows, not file lines, so it matches what an uploader sees in a
// spreadsheet minus the header.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// record is one raw row keyed by lower-cased header name.
type record map[string]string

// readRecords reads every row of r into header-keyed records. The first
// row is always treated as the header, matching the upload contract
// (header row defines keys).
func readRecords(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var out []record
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line; skip it rather than abort the batch.
			continue
		}
		row := make(record, len(keys))
		empty := true
		for i, v := range rec {
			if i >= len(keys) {
				break
			}
			v = strings.TrimSpace(v)
			if v != "" {
				empty = false
			}
			row[keys[i]] = v
		}
		if empty {
			continue
		}
		out = append(out, row)
		if len(out) >= MaxRows {
			break
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

// get returns the first non-empty value among the named columns.
func (r record) get(names ...string) string {
	for _, n := range names {
		if v, ok := r[strings.ToLower(n)]; ok && v != "" {
			return v
		}
	}
	return ""
}

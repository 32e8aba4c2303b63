// internal/app/system/csvutil/locations.go
package csvutil

import (
	"io"
	"strconv"
)

// LocationRow is one school code from a survey-location upload.
type LocationRow struct {
	UDISECode int64 `json:"udise_sch_code"`
	Line      int   `json:"line"`
}

// ParseLocationCSV pre-scans a survey-location upload. The only
// required column is udise_sch_code; rows where it is missing or not
// numeric are collected as RowErrors.
func ParseLocationCSV(r io.Reader) ([]LocationRow, []RowError, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, nil, err
	}

	var rows []LocationRow
	var rowErrs []RowError
	for i, rec := range records {
		line := i + 1
		raw := rec.get("udise_sch_code")
		if raw == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "missing udise_sch_code"})
			continue
		}
		code, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "udise_sch_code is not a number"})
			continue
		}
		rows = append(rows, LocationRow{UDISECode: code, Line: line})
	}
	if len(rows) == 0 && len(rowErrs) == 0 {
		return nil, nil, ErrNoRows
	}
	return rows, rowErrs, nil
}

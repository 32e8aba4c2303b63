// internal/app/system/csvutil/schools.go
package csvutil

import (
	"io"
	"strconv"

	"github.com/dalemusser/surveytrack/internal/domain/models"
)

// ParseSchoolCSV pre-scans a school reference-data upload into School
// models. udise_sch_code is required and numeric; block and district
// codes default to 0 when absent so partially filled reference files
// still load.
func ParseSchoolCSV(r io.Reader) ([]models.School, []RowError, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, nil, err
	}

	var rows []models.School
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
		blockCode, _ := strconv.ParseInt(rec.get("block_cd_1"), 10, 64)
		districtCode, _ := strconv.ParseInt(rec.get("district_cd"), 10, 64)
		rows = append(rows, models.School{
			UDISECode:    code,
			Name:         rec.get("school_name"),
			BlockCode:    blockCode,
			BlockName:    rec.get("block_name"),
			DistrictCode: districtCode,
			DistrictName: rec.get("district_name"),
			Division:     rec.get("division"),
		})
	}
	if len(rows) == 0 && len(rowErrs) == 0 {
		return nil, nil, ErrNoRows
	}
	return rows, rowErrs, nil
}

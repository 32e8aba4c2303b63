// internal/app/system/csvutil/officers.go
package csvutil

import (
	"io"

	"github.com/dalemusser/surveytrack/internal/app/system/normalize"
	"github.com/dalemusser/surveytrack/internal/domain/models"
)

// OfficerRow is one normalized row from an officer upload.
type OfficerRow struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
	Line  int    `json:"line"`
}

// officerEmailColumns maps each role to the header spellings its upload
// templates have used over time. The generic "email" column is accepted
// for all roles.
func officerEmailColumns(role models.Role) []string {
	switch role {
	case models.RoleBlock:
		return []string{"email", "block_coordinator_emailid"}
	case models.RoleDistrict:
		return []string{"email", "district_coordinator_emailid"}
	case models.RoleDivision:
		return []string{"email", "division_coordinator_emailid"}
	case models.RoleSME:
		return []string{"email", "sme_emailid"}
	}
	return []string{"email"}
}

func officerCodeColumns(role models.Role) []string {
	switch role {
	case models.RoleBlock, models.RoleSME:
		return []string{"code", "block_code"}
	case models.RoleDistrict:
		return []string{"code", "district_code"}
	case models.RoleDivision:
		return []string{"code", "division_code"}
	}
	return []string{"code"}
}

// ParseOfficerCSV pre-scans an officer upload for the given role.
// Rows without a usable email are collected as RowErrors; the code
// column is optional (uploads scoping officers to a sub-region carry it,
// notification-only uploads do not).
func ParseOfficerCSV(r io.Reader, role models.Role) ([]OfficerRow, []RowError, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, nil, err
	}

	emailCols := officerEmailColumns(role)
	codeCols := officerCodeColumns(role)

	var rows []OfficerRow
	var rowErrs []RowError
	for i, rec := range records {
		line := i + 1
		email := normalize.Email(rec.get(emailCols...))
		if email == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "missing email"})
			continue
		}
		rows = append(rows, OfficerRow{
			Email: email,
			Code:  normalize.Code(rec.get(codeCols...)),
			Line:  line,
		})
	}
	if len(rows) == 0 && len(rowErrs) == 0 {
		return nil, nil, ErrNoRows
	}
	return rows, rowErrs, nil
}

package csvutil

import (
	"strings"
	"testing"

	"github.com/dalemusser/surveytrack/internal/domain/models"
)

func TestParseOfficerCSV_GenericEmailColumn(t *testing.T) {
	csv := `email,code
C@X.COM,100
b@x.com,101`

	rows, rowErrs, err := ParseOfficerCSV(strings.NewReader(csv), models.RoleBlock)
	if err != nil {
		t.Fatalf("ParseOfficerCSV() error = %v", err)
	}
	if len(rowErrs) != 0 {
		t.Errorf("unexpected row errors: %v", rowErrs)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Email != "c@x.com" {
		t.Errorf("Row 0 Email = %q, want c@x.com (normalized)", rows[0].Email)
	}
	if rows[0].Code != "100" {
		t.Errorf("Row 0 Code = %q, want 100", rows[0].Code)
	}
}

func TestParseOfficerCSV_RoleSpecificColumns(t *testing.T) {
	csv := `block_Coordinator_EmailId,block_code
c@x.com,100`

	rows, _, err := ParseOfficerCSV(strings.NewReader(csv), models.RoleBlock)
	if err != nil {
		t.Fatalf("ParseOfficerCSV() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "c@x.com" || rows[0].Code != "100" {
		t.Errorf("rows = %+v, want one row c@x.com/100", rows)
	}

	csv = `sme_EmailId,block_code
s@x.com,200`
	rows, _, err = ParseOfficerCSV(strings.NewReader(csv), models.RoleSME)
	if err != nil {
		t.Fatalf("ParseOfficerCSV(sme) error = %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "s@x.com" {
		t.Errorf("sme rows = %+v, want one row s@x.com", rows)
	}
}

func TestParseOfficerCSV_MissingEmail(t *testing.T) {
	csv := `email,code
,100
ok@x.com,101`

	rows, rowErrs, err := ParseOfficerCSV(strings.NewReader(csv), models.RoleDistrict)
	if err != nil {
		t.Fatalf("ParseOfficerCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}
	if len(rowErrs) != 1 || rowErrs[0].Line != 1 {
		t.Errorf("rowErrs = %v, want one error on line 1", rowErrs)
	}
}

func TestParseOfficerCSV_EmptyFile(t *testing.T) {
	if _, _, err := ParseOfficerCSV(strings.NewReader(""), models.RoleBlock); err != ErrNoRows {
		t.Errorf("empty file err = %v, want ErrNoRows", err)
	}
	if _, _, err := ParseOfficerCSV(strings.NewReader("email,code\n"), models.RoleBlock); err != ErrNoRows {
		t.Errorf("header-only file err = %v, want ErrNoRows", err)
	}
}

func TestParseLocationCSV(t *testing.T) {
	csv := `udise_sch_code
111
222
bogus
111`

	rows, rowErrs, err := ParseLocationCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseLocationCSV() error = %v", err)
	}
	// Duplicates survive the pre-scan; the store collapses them.
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
	if len(rowErrs) != 1 || rowErrs[0].Line != 3 {
		t.Errorf("rowErrs = %v, want one error on line 3", rowErrs)
	}
}

func TestParseSchoolCSV(t *testing.T) {
	csv := `udise_sch_code,school_name,block_cd_1,district_cd,Division
111,Govt Primary School,100,5,Nagpur`

	rows, rowErrs, err := ParseSchoolCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseSchoolCSV() error = %v", err)
	}
	if len(rowErrs) != 0 {
		t.Errorf("unexpected row errors: %v", rowErrs)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	s := rows[0]
	if s.UDISECode != 111 || s.BlockCode != 100 || s.DistrictCode != 5 || s.Division != "Nagpur" {
		t.Errorf("school = %+v", s)
	}
}

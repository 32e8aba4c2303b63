// internal/app/store/queries/roleschools/roleschools.go
package roleschools

import (
	"context"
	"errors"
	"strconv"

	officerstore "github.com/dalemusser/surveytrack/internal/app/store/officers"
	schoolstore "github.com/dalemusser/surveytrack/internal/app/store/schools"
	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"github.com/dalemusser/surveytrack/internal/domain/models"
)

// ErrBadCode is returned when an officer's scope code should be numeric
// but is not.
var ErrBadCode = errors.New("officer scope code is not numeric")

// Resolver narrows a project's registered school universe down to the
// slice one officer is responsible for, based on the officer's role and
// scope code.
type Resolver struct {
	Officers  *officerstore.Store
	Locations *surveylocationstore.Store
	Schools   *schoolstore.Store
	Answers   *surveyanswerstore.Store
}

// SchoolsForOfficer resolves the officer's scope and returns the
// matching registered schools, each annotated with the status of its
// most recent answer in the given run (Pending when none exists).
//
// Block and SME officers are scoped by block code, district officers by
// district code, and division officers by division name. Division names
// match case-insensitively. A project with no registered location
// document yields surveylocationstore.ErrNotFound.
func (r *Resolver) SchoolsForOfficer(ctx context.Context, role models.Role, masterProjectID, surveyID, surveyFormID, email string) ([]models.School, error) {
	officer, err := r.Officers.GetByProjectAndEmail(ctx, role, masterProjectID, email)
	if err != nil {
		return nil, err
	}

	loc, err := r.Locations.GetByProject(ctx, masterProjectID)
	if err != nil {
		return nil, err
	}
	codes := loc.DistinctCodes()
	if len(codes) == 0 {
		return nil, nil
	}

	schools, err := r.schoolsInScope(ctx, role, officer.Code, codes)
	if err != nil {
		return nil, err
	}
	if len(schools) == 0 {
		return nil, nil
	}

	udises := make([]int64, 0, len(schools))
	for _, sc := range schools {
		udises = append(udises, sc.UDISECode)
	}
	statuses, err := r.Answers.LatestStatusByCode(ctx, masterProjectID, surveyID, surveyFormID, udises)
	if err != nil {
		return nil, err
	}
	for i := range schools {
		if st, ok := statuses[schools[i].UDISECode]; ok {
			schools[i].SurveyStatus = st
		} else {
			schools[i].SurveyStatus = models.StatusPending
		}
	}
	return schools, nil
}

func (r *Resolver) schoolsInScope(ctx context.Context, role models.Role, code string, udises []int64) ([]models.School, error) {
	switch role {
	case models.RoleBlock, models.RoleSME:
		n, err := strconv.ParseInt(code, 10, 64)
		if err != nil {
			return nil, ErrBadCode
		}
		return r.Schools.ByBlockCode(ctx, n, udises)
	case models.RoleDistrict:
		n, err := strconv.ParseInt(code, 10, 64)
		if err != nil {
			return nil, ErrBadCode
		}
		return r.Schools.ByDistrictCode(ctx, n, udises)
	case models.RoleDivision:
		return r.Schools.ByDivision(ctx, code, udises)
	}
	return nil, officerstore.ErrUnknownRole
}

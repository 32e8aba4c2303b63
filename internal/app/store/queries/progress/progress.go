// internal/app/store/queries/progress/progress.go
package progress

import (
	"context"

	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"go.uber.org/zap"
)

// CountMode selects how totalSurveyed is computed.
type CountMode int

const (
	// CountDistinctSchools counts schools with at least one answer.
	// This is the default: resubmissions do not move the number.
	CountDistinctSchools CountMode = iota

	// CountSubmissions counts raw answer documents. Kept for clients
	// that still chart submission volume.
	CountSubmissions
)

// Counts is the dashboard progress summary for one survey run.
type Counts struct {
	TotalLocations int64 `json:"totalLocations"`
	TotalSurveyed  int64 `json:"totalSurveyed"`
	TotalPending   int64 `json:"totalPending"`
}

// Aggregator joins the registered school universe with the answers
// recorded against it.
type Aggregator struct {
	Locations *surveylocationstore.Store
	Answers   *surveyanswerstore.Store
	Log       *zap.Logger
}

// Counts computes the progress summary for a (project, survey, form)
// run. Only answers whose school code is in the project's registered
// location set count as surveyed. A project with no location document
// yields surveylocationstore.ErrNotFound. Pending is locations minus
// surveyed; in CountSubmissions mode the subtraction can go negative,
// which is clamped to zero and logged.
func (a *Aggregator) Counts(ctx context.Context, masterProjectID, surveyID, surveyFormID string, mode CountMode) (Counts, error) {
	loc, err := a.Locations.GetByProject(ctx, masterProjectID)
	if err != nil {
		return Counts{}, err
	}
	registered := loc.DistinctCodes()
	total := int64(len(registered))

	var surveyed int64
	switch mode {
	case CountSubmissions:
		surveyed, err = a.Answers.CountSubmissions(ctx, masterProjectID, surveyID, surveyFormID, registered)
	default:
		var codes []int64
		codes, err = a.Answers.DistinctSurveyedCodes(ctx, masterProjectID, surveyID, surveyFormID, registered)
		surveyed = int64(len(codes))
	}
	if err != nil {
		return Counts{}, err
	}

	pending := total - surveyed
	if pending < 0 {
		a.Log.Warn("surveyed count exceeds registered locations",
			zap.String("master_project_id", masterProjectID),
			zap.String("survey_id", surveyID),
			zap.String("survey_form_id", surveyFormID),
			zap.Int64("total_locations", total),
			zap.Int64("total_surveyed", surveyed),
		)
		pending = 0
	}

	return Counts{
		TotalLocations: total,
		TotalSurveyed:  surveyed,
		TotalPending:   pending,
	}, nil
}

package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/surveytrack/internal/app/features/dashboard"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/progress"
	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"github.com/dalemusser/surveytrack/internal/testutil"
	"go.uber.org/zap"
)

func TestCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSurveyLocation(ctx, "ABCD1234", 101, 102, 103)
	now := time.Now().UTC()
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now.Add(time.Hour))

	handler := dashboard.NewHandler(&progress.Aggregator{
		Locations: surveylocationstore.New(db),
		Answers:   surveyanswerstore.New(db),
		Log:       zap.NewNop(),
	}, progress.CountDistinctSchools, zap.NewNop())

	req := httptest.NewRequest("GET", "/dashboard/count/ABCD1234/REA101/form-1", nil)
	req = testutil.WithChiURLParams(req, map[string]string{
		"masterProjectId": "ABCD1234",
		"surveyId":        "REA101",
		"surveyFormId":    "form-1",
	})
	rec := httptest.NewRecorder()
	handler.Count(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var resp struct {
		TotalLocations int64 `json:"totalLocations"`
		TotalSurveyed  int64 `json:"totalSurveyed"`
		TotalPending   int64 `json:"totalPending"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.TotalLocations != 3 {
		t.Errorf("expected 3 locations, got %d", resp.TotalLocations)
	}
	// Two submissions from the same school count once.
	if resp.TotalSurveyed != 1 {
		t.Errorf("expected 1 surveyed, got %d", resp.TotalSurveyed)
	}
	if resp.TotalPending != 2 {
		t.Errorf("expected 2 pending, got %d", resp.TotalPending)
	}
}

func TestCount_SubmissionMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSurveyLocation(ctx, "ABCD1234", 101)
	now := time.Now().UTC()
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now.Add(time.Hour))

	handler := dashboard.NewHandler(&progress.Aggregator{
		Locations: surveylocationstore.New(db),
		Answers:   surveyanswerstore.New(db),
		Log:       zap.NewNop(),
	}, progress.CountDistinctSchools, zap.NewNop())

	req := httptest.NewRequest("GET", "/dashboard/count/ABCD1234/REA101/form-1?mode=submissions", nil)
	req = testutil.WithChiURLParams(req, map[string]string{
		"masterProjectId": "ABCD1234",
		"surveyId":        "REA101",
		"surveyFormId":    "form-1",
	})
	rec := httptest.NewRecorder()
	handler.Count(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var resp struct {
		TotalSurveyed int64 `json:"totalSurveyed"`
		TotalPending  int64 `json:"totalPending"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.TotalSurveyed != 2 {
		t.Errorf("expected 2 submissions, got %d", resp.TotalSurveyed)
	}
	if resp.TotalPending != 0 {
		t.Errorf("expected pending clamped to 0, got %d", resp.TotalPending)
	}
}

func TestCount_NoLocationsIs404(t *testing.T) {
	db := testutil.SetupTestDB(t)

	handler := dashboard.NewHandler(&progress.Aggregator{
		Locations: surveylocationstore.New(db),
		Answers:   surveyanswerstore.New(db),
		Log:       zap.NewNop(),
	}, progress.CountDistinctSchools, zap.NewNop())

	req := httptest.NewRequest("GET", "/dashboard/count/ZZZZ0000/REA101/form-1", nil)
	req = testutil.WithChiURLParams(req, map[string]string{
		"masterProjectId": "ZZZZ0000",
		"surveyId":        "REA101",
		"surveyFormId":    "form-1",
	})
	rec := httptest.NewRecorder()
	handler.Count(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

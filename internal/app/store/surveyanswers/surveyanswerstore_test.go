package surveyanswerstore_test

import (
	"testing"
	"time"

	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveyanswerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.SurveyAnswer{
		MasterProjectID: "ABCD1234",
		SurveyID:        "REA101",
		SurveyFormID:    "form-1",
		UDISECode:       101,
		ConductEmail:    "officer@example.com",
		Questions: []models.QuestionAnswer{
			{Question: "Has library?", Answer: []string{"yes"}},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.StatusSurveyed {
		t.Errorf("expected default status %q, got %q", models.StatusSurveyed, created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_CountAndDistinct_Resubmission(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveyanswerstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	// School 101 submits twice, school 102 once.
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now.Add(time.Hour))
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 102, now)
	// Answer in another run must not leak in.
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "OTH200", "form-1", 103, now)
	// Answer from a school outside the registered set must not count.
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 999, now)

	registered := []int64{101, 102, 103}
	n, err := store.CountSubmissions(ctx, "ABCD1234", "REA101", "form-1", registered)
	if err != nil {
		t.Fatalf("CountSubmissions failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 submissions, got %d", n)
	}

	codes, err := store.DistinctSurveyedCodes(ctx, "ABCD1234", "REA101", "form-1", registered)
	if err != nil {
		t.Fatalf("DistinctSurveyedCodes failed: %v", err)
	}
	if len(codes) != 2 {
		t.Errorf("expected 2 distinct schools, got %d (%v)", len(codes), codes)
	}
}

func TestStore_FirstAndLast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveyanswerstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	registered := []int64{101, 102}
	first, last, err := store.FirstAndLast(ctx, "ABCD1234", "REA101", "form-1", registered)
	if err != nil {
		t.Fatalf("FirstAndLast failed: %v", err)
	}
	if first != nil || last != nil {
		t.Error("expected nil dates with no answers")
	}

	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(48 * time.Hour)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, t1)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 102, t0)
	// A later answer from an unregistered school and one on a different
	// form must not move the range.
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 999, t1.Add(time.Hour))
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-2", 101, t0.Add(-time.Hour))

	first, last, err = store.FirstAndLast(ctx, "ABCD1234", "REA101", "form-1", registered)
	if err != nil {
		t.Fatalf("FirstAndLast failed: %v", err)
	}
	if first == nil || !first.Equal(t0) {
		t.Errorf("expected first %v, got %v", t0, first)
	}
	if last == nil || !last.Equal(t1) {
		t.Errorf("expected last %v, got %v", t1, last)
	}
}

func TestStore_LatestStatusByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveyanswerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mk := func(udise int64, status string, at time.Time) {
		t.Helper()
		if _, err := store.Create(ctx, models.SurveyAnswer{
			MasterProjectID: "ABCD1234",
			SurveyID:        "REA101",
			SurveyFormID:    "form-1",
			UDISECode:       udise,
			Status:          status,
			CreatedAt:       at,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	mk(101, models.StatusSurveyed, t0)
	mk(101, models.StatusAudited, t0.Add(time.Hour))
	mk(102, models.StatusSurveyed, t0)

	statuses, err := store.LatestStatusByCode(ctx, "ABCD1234", "REA101", "form-1", []int64{101, 102, 103})
	if err != nil {
		t.Fatalf("LatestStatusByCode failed: %v", err)
	}
	if statuses[101] != models.StatusAudited {
		t.Errorf("expected latest status Audited for 101, got %q", statuses[101])
	}
	if statuses[102] != models.StatusSurveyed {
		t.Errorf("expected Surveyed for 102, got %q", statuses[102])
	}
	if _, ok := statuses[103]; ok {
		t.Error("expected no status for school without answers")
	}
}

func TestStore_ByTriple_SchoolFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveyanswerstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 101, now)
	fx.CreateSurveyAnswer(ctx, "ABCD1234", "REA101", "form-1", 102, now)

	got, err := store.ByTriple(ctx, "ABCD1234", "REA101", "form-1", 101)
	if err != nil {
		t.Fatalf("ByTriple failed: %v", err)
	}
	if len(got) != 1 || got[0].UDISECode != 101 {
		t.Errorf("expected 1 answer for school 101, got %+v", got)
	}

	all, err := store.ByTriple(ctx, "ABCD1234", "REA101", "form-1", 0)
	if err != nil {
		t.Fatalf("ByTriple failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 answers without school filter, got %d", len(all))
	}
}

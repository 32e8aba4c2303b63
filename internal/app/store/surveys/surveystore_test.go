package surveystore_test

import (
	"regexp"
	"testing"
	"time"

	surveystore "github.com/dalemusser/surveytrack/internal/app/store/surveys"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
)

var surveyIDShape = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Survey{
		MasterProjectID: "ABCD1234",
		OwnerEmailID:    "owner@example.com",
		Name:            "Reading Assessment",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !surveyIDShape.MatchString(created.SurveyID) {
		t.Errorf("unexpected surveyId shape: %q", created.SurveyID)
	}
	if created.SurveyID[:3] != "REA" {
		t.Errorf("expected surveyId prefix REA, got %q", created.SurveyID)
	}
	if created.ActualStartDate != nil || created.ActualEndDate != nil {
		t.Error("expected actual dates to start unset")
	}
}

func TestStore_ByOwnerAndProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mk := func(owner, project string) {
		t.Helper()
		if _, err := store.Create(ctx, models.Survey{
			MasterProjectID: project,
			OwnerEmailID:    owner,
			Name:            "Survey",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	mk("a@example.com", "AAAA1111")
	mk("a@example.com", "AAAA1111")
	mk("a@example.com", "BBBB2222")
	mk("b@example.com", "AAAA1111")

	got, err := store.ByOwnerAndProject(ctx, "a@example.com", "AAAA1111")
	if err != nil {
		t.Fatalf("ByOwnerAndProject failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 surveys, got %d", len(got))
	}
}

func TestStore_SetActualDates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Survey{
		MasterProjectID: "ABCD1234",
		Name:            "Dates",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)
	if err := store.SetActualDates(ctx, "ABCD1234", created.SurveyID, &start, &end); err != nil {
		t.Fatalf("SetActualDates failed: %v", err)
	}

	got, err := store.GetBySurveyID(ctx, created.SurveyID)
	if err != nil {
		t.Fatalf("GetBySurveyID failed: %v", err)
	}
	if got.ActualStartDate == nil || !got.ActualStartDate.Equal(start) {
		t.Errorf("expected actual start %v, got %v", start, got.ActualStartDate)
	}
	if got.ActualEndDate == nil || !got.ActualEndDate.Equal(end) {
		t.Errorf("expected actual end %v, got %v", end, got.ActualEndDate)
	}

	// End-only update leaves the start untouched.
	later := end.Add(24 * time.Hour)
	if err := store.SetActualDates(ctx, "ABCD1234", created.SurveyID, nil, &later); err != nil {
		t.Fatalf("SetActualDates (end only) failed: %v", err)
	}
	got, err = store.GetBySurveyID(ctx, created.SurveyID)
	if err != nil {
		t.Fatalf("GetBySurveyID failed: %v", err)
	}
	if got.ActualStartDate == nil || !got.ActualStartDate.Equal(start) {
		t.Errorf("actual start changed unexpectedly: %v", got.ActualStartDate)
	}
	if got.ActualEndDate == nil || !got.ActualEndDate.Equal(later) {
		t.Errorf("expected actual end %v, got %v", later, got.ActualEndDate)
	}

	if err := store.SetActualDates(ctx, "ABCD1234", "ZZZ999", &start, nil); err != surveystore.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing survey, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Survey{MasterProjectID: "ABCD1234", Name: "Gone"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	n, err := store.Delete(ctx, created.SurveyID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := store.GetBySurveyID(ctx, created.SurveyID); err != surveystore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

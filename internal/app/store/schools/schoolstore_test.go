package schoolstore_test

import (
	"testing"

	schoolstore "github.com/dalemusser/surveytrack/internal/app/store/schools"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_InsertMany_SkipsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	batch := []models.School{
		{UDISECode: 101, BlockCode: 41, DistrictCode: 4, Division: "Nagpur"},
		{UDISECode: 102, BlockCode: 41, DistrictCode: 4, Division: "Nagpur"},
	}
	n, err := store.InsertMany(ctx, batch)
	if err != nil {
		t.Fatalf("InsertMany failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 inserted, got %d", n)
	}

	// Re-running the batch with one new row only adds the new row.
	batch = append(batch, models.School{UDISECode: 103, BlockCode: 42, DistrictCode: 4, Division: "Nagpur"})
	n, err = store.InsertMany(ctx, batch)
	if err != nil {
		t.Fatalf("second InsertMany failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 inserted on re-run, got %d", n)
	}

	total, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 schools total, got %d", total)
	}
}

func TestStore_ScopedLookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSchool(ctx, 101, 41, 4, "Nagpur")
	fx.CreateSchool(ctx, 102, 41, 4, "Nagpur")
	fx.CreateSchool(ctx, 103, 42, 4, "Nagpur")
	fx.CreateSchool(ctx, 104, 51, 5, "Pune")

	codes := []int64{101, 102, 103, 104}

	block, err := store.ByBlockCode(ctx, 41, codes)
	if err != nil {
		t.Fatalf("ByBlockCode failed: %v", err)
	}
	if len(block) != 2 {
		t.Errorf("expected 2 schools in block 41, got %d", len(block))
	}

	district, err := store.ByDistrictCode(ctx, 4, codes)
	if err != nil {
		t.Fatalf("ByDistrictCode failed: %v", err)
	}
	if len(district) != 3 {
		t.Errorf("expected 3 schools in district 4, got %d", len(district))
	}

	// Division matching ignores case.
	division, err := store.ByDivision(ctx, "nagpur", codes)
	if err != nil {
		t.Fatalf("ByDivision failed: %v", err)
	}
	if len(division) != 3 {
		t.Errorf("expected 3 schools in division Nagpur, got %d", len(division))
	}

	// Registered-code restriction applies within scope.
	narrow, err := store.ByBlockCode(ctx, 41, []int64{101})
	if err != nil {
		t.Fatalf("ByBlockCode failed: %v", err)
	}
	if len(narrow) != 1 || narrow[0].UDISECode != 101 {
		t.Errorf("expected only school 101, got %+v", narrow)
	}
}

func TestStore_GetByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateSchool(ctx, 101, 41, 4, "Nagpur")

	got, err := store.GetByCode(ctx, 101)
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if got.BlockCode != 41 {
		t.Errorf("expected block 41, got %d", got.BlockCode)
	}

	if _, err := store.GetByCode(ctx, 999); err != schoolstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

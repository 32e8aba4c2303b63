package masterprojectstore_test

import (
	"regexp"
	"testing"

	masterprojectstore "github.com/dalemusser/surveytrack/internal/app/store/masterprojects"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var projectIDShape = regexp.MustCompile(`^[A-Z]{4}[0-9]{4}$`)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mp := models.MasterProject{
		Name:         "Literacy Drive",
		Purpose:      "baseline",
		OwnerName:    "Owner",
		OwnerEmailID: "owner@example.com",
	}

	created, err := store.Create(ctx, mp)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if !projectIDShape.MatchString(created.MasterProjectID) {
		t.Errorf("unexpected masterProjectId shape: %q", created.MasterProjectID)
	}
	if created.ProjectStatus != models.ProjectNotStarted {
		t.Errorf("expected status %q, got %q", models.ProjectNotStarted, created.ProjectStatus)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_GeneratesDistinctIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		created, err := store.Create(ctx, models.MasterProject{Name: "P", OwnerEmailID: "o@example.com"})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[created.MasterProjectID] {
			t.Fatalf("duplicate masterProjectId issued: %q", created.MasterProjectID)
		}
		seen[created.MasterProjectID] = true
	}
}

func TestStore_GetByMasterProjectID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.MasterProject{Name: "Lookup", OwnerEmailID: "o@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByMasterProjectID(ctx, created.MasterProjectID)
	if err != nil {
		t.Fatalf("GetByMasterProjectID failed: %v", err)
	}
	if got.Name != "Lookup" {
		t.Errorf("expected name 'Lookup', got %q", got.Name)
	}

	_, err = store.GetByMasterProjectID(ctx, "ZZZZ0000")
	if err != masterprojectstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing project, got %v", err)
	}
}

func TestStore_ByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.MasterProject{Name: "Mine", OwnerEmailID: "mine@example.com"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.MasterProject{Name: "Other", OwnerEmailID: "other@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ByOwner(ctx, "mine@example.com")
	if err != nil {
		t.Fatalf("ByOwner failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 projects, got %d", len(got))
	}
}

func TestStore_UpdateAndStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.MasterProject{Name: "Before", OwnerEmailID: "o@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.MasterProjectID, bson.M{"masterProjectName": "After"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := store.SetStatus(ctx, created.MasterProjectID, models.ProjectInProgress); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByMasterProjectID(ctx, created.MasterProjectID)
	if err != nil {
		t.Fatalf("GetByMasterProjectID failed: %v", err)
	}
	if got.Name != "After" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if got.ProjectStatus != models.ProjectInProgress {
		t.Errorf("expected status %q, got %q", models.ProjectInProgress, got.ProjectStatus)
	}

	if err := store.Update(ctx, "ZZZZ0000", bson.M{"masterProjectName": "x"}); err != masterprojectstore.ErrNotFound {
		t.Errorf("expected ErrNotFound updating missing project, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := masterprojectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.MasterProject{Name: "Gone", OwnerEmailID: "o@example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.MasterProjectID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := store.GetByMasterProjectID(ctx, created.MasterProjectID); err != masterprojectstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

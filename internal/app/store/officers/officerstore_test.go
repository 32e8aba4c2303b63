package officerstore_test

import (
	"testing"

	officerstore "github.com/dalemusser/surveytrack/internal/app/store/officers"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
)

func TestStore_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Insert(ctx, models.RoleBlock, models.Officer{
		MasterProjectID: "ABCD1234",
		SurveyAdmin:     "admin@example.com",
		Email:           "  Block.One@Example.COM ",
		Code:            " 4101 ",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created.Email != "block.one@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.Code != "4101" {
		t.Errorf("expected trimmed code, got %q", created.Code)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Insert_DuplicateWithinProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o := models.Officer{MasterProjectID: "ABCD1234", Email: "dup@example.com", Code: "1"}
	if _, err := store.Insert(ctx, models.RoleDistrict, o); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	if _, err := store.Insert(ctx, models.RoleDistrict, o); err != officerstore.ErrDuplicate {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// Same email under a different project is fine.
	o.MasterProjectID = "EFGH5678"
	if _, err := store.Insert(ctx, models.RoleDistrict, o); err != nil {
		t.Errorf("insert under second project failed: %v", err)
	}

	// Same email in a different role collection is also fine.
	o.MasterProjectID = "ABCD1234"
	if _, err := store.Insert(ctx, models.RoleBlock, o); err != nil {
		t.Errorf("insert under different role failed: %v", err)
	}
}

func TestStore_Insert_UnknownRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, models.Role("state"), models.Officer{Email: "x@example.com"}); err != officerstore.ErrUnknownRole {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestStore_ByProjectAndProjectIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mk := func(project, email string) {
		t.Helper()
		if _, err := store.Insert(ctx, models.RoleDivision, models.Officer{
			MasterProjectID: project,
			Email:           email,
			Code:            "Nagpur",
		}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	mk("ABCD1234", "div.a@example.com")
	mk("ABCD1234", "div.b@example.com")
	mk("EFGH5678", "div.a@example.com")

	got, err := store.ByProject(ctx, models.RoleDivision, "ABCD1234")
	if err != nil {
		t.Fatalf("ByProject failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 officers, got %d", len(got))
	}

	ids, err := store.ProjectIDsForEmail(ctx, models.RoleDivision, "div.a@example.com")
	if err != nil {
		t.Fatalf("ProjectIDsForEmail failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 project ids, got %v", ids)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, models.RoleSME, models.Officer{
		MasterProjectID: "ABCD1234",
		Email:           "sme@example.com",
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	n, err := store.Delete(ctx, models.RoleSME, "ABCD1234", "sme@example.com")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := store.GetByProjectAndEmail(ctx, models.RoleSME, "ABCD1234", "sme@example.com"); err != officerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

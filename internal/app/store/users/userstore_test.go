package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/surveytrack/internal/app/store/users"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/surveytrack/internal/testutil"
)

func TestStore_Create_NormalizesEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:  "Block Officer",
		Email: "  Officer@Example.COM ",
		Role:  string(models.RoleBlock),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "officer@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
}

func TestStore_ExistsWithRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "district@example.com", string(models.RoleDistrict))

	ok, err := store.ExistsWithRole(ctx, "district@example.com", models.RoleDistrict)
	if err != nil {
		t.Fatalf("ExistsWithRole failed: %v", err)
	}
	if !ok {
		t.Error("expected account to exist for its own role")
	}

	ok, err = store.ExistsWithRole(ctx, "district@example.com", models.RoleBlock)
	if err != nil {
		t.Fatalf("ExistsWithRole failed: %v", err)
	}
	if ok {
		t.Error("expected no match under a different role")
	}
}

func TestStore_GetByEmailAndRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "sme@example.com", string(models.RoleSME))

	u, err := store.GetByEmailAndRole(ctx, "SME@example.com", models.RoleSME)
	if err != nil {
		t.Fatalf("GetByEmailAndRole failed: %v", err)
	}
	if u.Email != "sme@example.com" {
		t.Errorf("unexpected email %q", u.Email)
	}

	if _, err := store.GetByEmailAndRole(ctx, "missing@example.com", models.RoleSME); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ByEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "a@example.com", string(models.RoleBlock))
	fx.CreateUser(ctx, "b@example.com", string(models.RoleBlock))
	fx.CreateUser(ctx, "c@example.com", string(models.RoleDistrict))

	got, err := store.ByEmails(ctx, []string{"a@example.com", "b@example.com", "c@example.com", "ghost@example.com"}, models.RoleBlock)
	if err != nil {
		t.Fatalf("ByEmails failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 block accounts, got %d", len(got))
	}

	all, err := store.ByEmails(ctx, []string{"a@example.com", "c@example.com"}, "")
	if err != nil {
		t.Fatalf("ByEmails failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 accounts with no role filter, got %d", len(all))
	}
}

// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMasterProject inserts a master project with the given generated
// ID and owner email.
func (f *Fixtures) CreateMasterProject(ctx context.Context, masterProjectID, ownerEmail string) models.MasterProject {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.MasterProject{
		ID:              primitive.NewObjectID(),
		MasterProjectID: masterProjectID,
		Name:            "Test Project " + masterProjectID,
		Purpose:         "testing",
		StartDate:       now,
		EndDate:         now.AddDate(0, 1, 0),
		OwnerName:       "Test Owner",
		OwnerEmailID:    ownerEmail,
		ProjectStatus:   models.ProjectNotStarted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("master_projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test master project: %v", err)
	}
	return p
}

// CreateUser inserts a user-directory record with the given email and
// role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Test User",
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateSchool inserts a school reference record.
func (f *Fixtures) CreateSchool(ctx context.Context, udise, blockCode, districtCode int64, division string) models.School {
	f.t.Helper()

	s := models.School{
		ID:           primitive.NewObjectID(),
		UDISECode:    udise,
		Name:         "Test School",
		BlockCode:    blockCode,
		DistrictCode: districtCode,
		Division:     division,
	}
	if _, err := f.db.Collection("schools").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test school: %v", err)
	}
	return s
}

// CreateSurveyLocation inserts a survey-location document holding the
// given UDISE codes, duplicates preserved as stored.
func (f *Fixtures) CreateSurveyLocation(ctx context.Context, masterProjectID string, codes ...int64) models.SurveyLocation {
	f.t.Helper()

	entries := make([]models.LocationEntry, 0, len(codes))
	for _, c := range codes {
		entries = append(entries, models.LocationEntry{UDISECode: c})
	}
	now := time.Now().UTC()
	loc := models.SurveyLocation{
		ID:              primitive.NewObjectID(),
		MasterProjectID: masterProjectID,
		ProjectName:     "Test Project",
		Locations:       entries,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("survey_locations").InsertOne(ctx, loc); err != nil {
		f.t.Fatalf("failed to create test survey location: %v", err)
	}
	return loc
}

// CreateSurveyAnswer inserts an answer for the given triple and school
// at the given creation time.
func (f *Fixtures) CreateSurveyAnswer(ctx context.Context, masterProjectID, surveyID, surveyFormID string, udise int64, createdAt time.Time) models.SurveyAnswer {
	f.t.Helper()

	a := models.SurveyAnswer{
		ID:              primitive.NewObjectID(),
		MasterProjectID: masterProjectID,
		SurveyID:        surveyID,
		SurveyFormID:    surveyFormID,
		UDISECode:       udise,
		ConductEmail:    "surveyor@x.com",
		Status:          models.StatusSurveyed,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if _, err := f.db.Collection("survey_answers").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test survey answer: %v", err)
	}
	return a
}

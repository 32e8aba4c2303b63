// internal/app/store/surveylocations/surveylocationstore.go
package surveylocationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("survey locations not found for project")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("survey_locations")}
}

// GetByProject retrieves the single location document for a project.
func (s *Store) GetByProject(ctx context.Context, masterProjectID string) (models.SurveyLocation, error) {
	var loc models.SurveyLocation
	err := s.c.FindOne(ctx, bson.M{"masterProjectId": masterProjectID}).Decode(&loc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.SurveyLocation{}, ErrNotFound
		}
		return models.SurveyLocation{}, err
	}
	return loc, nil
}

// AddCodes registers school codes for a project, creating the location
// document on first upload. The Locations array is grown with $addToSet,
// so codes already registered are not appended again and repeat uploads
// are idempotent. The project snapshot fields are written once, when the
// document is created.
func (s *Store) AddCodes(ctx context.Context, project models.MasterProject, codes []int64) (models.SurveyLocation, error) {
	entries := make([]models.LocationEntry, 0, len(codes))
	for _, c := range codes {
		entries = append(entries, models.LocationEntry{UDISECode: c})
	}
	now := time.Now().UTC()

	update := bson.M{
		"$addToSet": bson.M{"surveyLocations": bson.M{"$each": entries}},
		"$set":      bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"masterProjectId":           project.MasterProjectID,
			"masterProjectName":         project.Name,
			"masterProjectPurpose":      project.Purpose,
			"masterProjectOwnerName":    project.OwnerName,
			"masterProjectOwnerEmailId": project.OwnerEmailID,
			"masterProjectStartDate":    project.StartDate,
			"masterProjectEndDate":      project.EndDate,
			"created_at":                now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, bson.M{"masterProjectId": project.MasterProjectID}, update, opts); err != nil {
		return models.SurveyLocation{}, err
	}
	return s.GetByProject(ctx, project.MasterProjectID)
}

// CountForProject returns the number of distinct registered schools.
func (s *Store) CountForProject(ctx context.Context, masterProjectID string) (int64, error) {
	loc, err := s.GetByProject(ctx, masterProjectID)
	if err != nil {
		if err == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return int64(len(loc.DistinctCodes())), nil
}

// Delete removes the location document for a project.
func (s *Store) Delete(ctx context.Context, masterProjectID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"masterProjectId": masterProjectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/surveys/surveystore.go
package surveystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/surveytrack/internal/app/system/identifier"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c   *mongo.Collection
	ids *identifier.Generator
}

var (
	ErrNotFound  = errors.New("survey not found")
	ErrDuplicate = errors.New("a survey with this id already exists")
)

const idRetries = 5

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("surveys"), ids: identifier.New()}
}

// Create inserts a new survey, deriving its surveyId from the survey
// name. Id collisions are resolved by re-generating against the unique
// index on surveyId.
func (s *Store) Create(ctx context.Context, sv models.Survey) (models.Survey, error) {
	now := time.Now().UTC()
	sv.ID = primitive.NewObjectID()
	sv.CreatedAt = now
	sv.UpdatedAt = now

	for i := 0; i < idRetries; i++ {
		sv.SurveyID = s.ids.SurveyID(sv.Name)
		_, err := s.c.InsertOne(ctx, sv)
		if err == nil {
			return sv, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.Survey{}, err
		}
	}
	return models.Survey{}, ErrDuplicate
}

// GetBySurveyID retrieves a survey by its generated id.
func (s *Store) GetBySurveyID(ctx context.Context, surveyID string) (models.Survey, error) {
	var sv models.Survey
	err := s.c.FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&sv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Survey{}, ErrNotFound
		}
		return models.Survey{}, err
	}
	return sv, nil
}

// ByProject returns the surveys under a master project.
func (s *Store) ByProject(ctx context.Context, masterProjectID string, opts ...*options.FindOptions) ([]models.Survey, error) {
	return s.find(ctx, bson.M{"masterProjectId": masterProjectID}, opts...)
}

// ByOwnerAndProject returns the surveys an owner created inside one
// master project.
func (s *Store) ByOwnerAndProject(ctx context.Context, ownerEmail, masterProjectID string, opts ...*options.FindOptions) ([]models.Survey, error) {
	return s.find(ctx, bson.M{
		"masterProjectOwnerEmailId": ownerEmail,
		"masterProjectId":           masterProjectID,
	}, opts...)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Survey, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Survey
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of surveys matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update modifies a survey's mutable fields, keyed by surveyId.
func (s *Store) Update(ctx context.Context, surveyID string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"surveyId": surveyID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActualDates records the observed start and end of data collection,
// derived from the created_at of the first and last answers. A nil end
// leaves actualEndDate untouched.
func (s *Store) SetActualDates(ctx context.Context, masterProjectID, surveyID string, start, end *time.Time) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if start != nil {
		set["actualStartDate"] = *start
	}
	if end != nil {
		set["actualEndDate"] = *end
	}
	res, err := s.c.UpdateOne(ctx, bson.M{
		"masterProjectId": masterProjectID,
		"surveyId":        surveyID,
	}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a survey by surveyId.
func (s *Store) Delete(ctx context.Context, surveyID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

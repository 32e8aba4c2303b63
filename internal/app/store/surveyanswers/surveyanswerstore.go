// internal/app/store/surveyanswers/surveyanswerstore.go
package surveyanswerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("survey answer not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("survey_answers")}
}

// tripleFilter matches answers for one (project, survey, form) run.
func tripleFilter(masterProjectID, surveyID, surveyFormID string) bson.M {
	return bson.M{
		"masterProjectId": masterProjectID,
		"surveyId":        surveyID,
		"surveyFormId":    surveyFormID,
	}
}

// Create inserts a submitted answer. Status defaults to Surveyed.
// Resubmission for the same school is allowed; every submission is its
// own document.
func (s *Store) Create(ctx context.Context, a models.SurveyAnswer) (models.SurveyAnswer, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = models.StatusSurveyed
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.SurveyAnswer{}, err
	}
	return a, nil
}

// GetByID retrieves a single answer document.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.SurveyAnswer, error) {
	var a models.SurveyAnswer
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.SurveyAnswer{}, ErrNotFound
		}
		return models.SurveyAnswer{}, err
	}
	return a, nil
}

// ByTriple returns the answers for one survey run, optionally narrowed
// to a single school via udise > 0.
func (s *Store) ByTriple(ctx context.Context, masterProjectID, surveyID, surveyFormID string, udise int64, opts ...*options.FindOptions) ([]models.SurveyAnswer, error) {
	filter := tripleFilter(masterProjectID, surveyID, surveyFormID)
	if udise > 0 {
		filter["udise_sch_code"] = udise
	}
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SurveyAnswer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountSubmissions returns the raw number of answer documents for a
// survey run across the registered school codes. Because resubmission
// is allowed, this can exceed the number of schools surveyed. Answers
// for codes outside the registered set never count.
func (s *Store) CountSubmissions(ctx context.Context, masterProjectID, surveyID, surveyFormID string, registered []int64) (int64, error) {
	filter := tripleFilter(masterProjectID, surveyID, surveyFormID)
	filter["udise_sch_code"] = bson.M{"$in": registered}
	return s.c.CountDocuments(ctx, filter)
}

// DistinctSurveyedCodes returns the distinct registered school codes
// with at least one answer for a survey run.
func (s *Store) DistinctSurveyedCodes(ctx context.Context, masterProjectID, surveyID, surveyFormID string, registered []int64) ([]int64, error) {
	filter := tripleFilter(masterProjectID, surveyID, surveyFormID)
	filter["udise_sch_code"] = bson.M{"$in": registered}
	raw, err := s.c.Distinct(ctx, "udise_sch_code", filter)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case int64:
			out = append(out, n)
		case int32:
			out = append(out, int64(n))
		case float64:
			out = append(out, int64(n))
		}
	}
	return out, nil
}

// FirstAndLast returns the created_at of the earliest and latest answer
// in the run for a registered school, used to maintain the survey's
// actual start/end dates. Answers for unregistered codes do not move
// the dates. Both are nil when no qualifying answers exist.
func (s *Store) FirstAndLast(ctx context.Context, masterProjectID, surveyID, surveyFormID string, registered []int64) (first, last *time.Time, err error) {
	filter := tripleFilter(masterProjectID, surveyID, surveyFormID)
	filter["udise_sch_code"] = bson.M{"$in": registered}

	var doc struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	err = s.c.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	f := doc.CreatedAt
	first = &f

	err = s.c.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})).Decode(&doc)
	if err != nil {
		return nil, nil, err
	}
	l := doc.CreatedAt
	last = &l
	return first, last, nil
}

// LatestStatusByCode returns, for each school in codes that has at
// least one answer in the run, the status of its most recent answer.
func (s *Store) LatestStatusByCode(ctx context.Context, masterProjectID, surveyID, surveyFormID string, codes []int64) (map[int64]string, error) {
	match := tripleFilter(masterProjectID, surveyID, surveyFormID)
	if len(codes) > 0 {
		match["udise_sch_code"] = bson.M{"$in": codes}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$udise_sch_code"},
			{Key: "status", Value: bson.D{{Key: "$first", Value: "$status"}}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Code   int64  `bson:"_id"`
		Status string `bson:"status"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(rows))
	for _, r := range rows {
		out[r.Code] = r.Status
	}
	return out, nil
}

// Update modifies an answer's mutable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an answer document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

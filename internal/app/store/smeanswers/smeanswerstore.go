// internal/app/store/smeanswers/smeanswerstore.go
package smeanswerstore

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

// Store holds SME audit submissions. They live in their own collection
// so audit activity never skews the surveyed counts.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("sme survey answer not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sme_survey_answers")}
}

// Create inserts an SME audit submission. Status defaults to Audited.
func (s *Store) Create(ctx context.Context, a models.SMESurveyAnswer) (models.SMESurveyAnswer, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = models.StatusAudited
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.SMESurveyAnswer{}, err
	}
	return a, nil
}

// ByTriple returns the audit submissions for one survey run, optionally
// narrowed to a single school via udise > 0.
func (s *Store) ByTriple(ctx context.Context, masterProjectID, surveyID, surveyFormID string, udise int64, opts ...*options.FindOptions) ([]models.SMESurveyAnswer, error) {
	filter := bson.M{
		"masterProjectId": masterProjectID,
		"surveyId":        surveyID,
		"surveyFormId":    surveyFormID,
	}
	if udise > 0 {
		filter["udise_sch_code"] = udise
	}
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SMESurveyAnswer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DistinctAuditedCodes returns the distinct school codes with at least
// one audit submission for a survey run.
func (s *Store) DistinctAuditedCodes(ctx context.Context, masterProjectID, surveyID, surveyFormID string) ([]int64, error) {
	raw, err := s.c.Distinct(ctx, "udise_sch_code", bson.M{
		"masterProjectId": masterProjectID,
		"surveyId":        surveyID,
		"surveyFormId":    surveyFormID,
	})
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

// Update modifies an audit submission's mutable fields.
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

// Delete removes an audit submission.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/coordinatorassign/coordinatorassignstore.go
package coordinatorassign

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

var ErrNotFound = errors.New("coordinator assignment not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("coordinator_assignments")}
}

// AddEmails merges emails into the role's array on the project's
// assignment document, creating the document on first use. $addToSet
// keeps each role list a distinct set, so re-uploading the same
// officers never grows it.
func (s *Store) AddEmails(ctx context.Context, masterProjectID, surveyAdmin string, role models.Role, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	field := role.EmailArrayField()
	if field == "" {
		return errors.New("coordinatorassign: unknown role")
	}
	now := time.Now().UTC()

	update := bson.M{
		"$addToSet": bson.M{field: bson.M{"$each": emails}},
		"$set":      bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"masterProjectId": masterProjectID,
			"surveyAdmin":     surveyAdmin,
			"created_at":      now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"masterProjectId": masterProjectID}, update, opts)
	return err
}

// GetByProject returns the single assignment document for a project.
func (s *Store) GetByProject(ctx context.Context, masterProjectID string) (models.CoordinatorAssignment, error) {
	var a models.CoordinatorAssignment
	err := s.c.FindOne(ctx, bson.M{"masterProjectId": masterProjectID}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.CoordinatorAssignment{}, ErrNotFound
		}
		return models.CoordinatorAssignment{}, err
	}
	return a, nil
}

// EmailsForRole returns the role's email list for a project. A missing
// assignment document reads as an empty list.
func (s *Store) EmailsForRole(ctx context.Context, masterProjectID string, role models.Role) ([]string, error) {
	a, err := s.GetByProject(ctx, masterProjectID)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return a.EmailsForRole(role), nil
}

// RemoveEmail pulls an email out of the role's array, used when an
// officer row is deleted.
func (s *Store) RemoveEmail(ctx context.Context, masterProjectID string, role models.Role, email string) error {
	field := role.EmailArrayField()
	if field == "" {
		return errors.New("coordinatorassign: unknown role")
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"masterProjectId": masterProjectID}, bson.M{
		"$pull": bson.M{field: email},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ProjectIDsForEmail returns the masterProjectIds whose role list
// contains the given email.
func (s *Store) ProjectIDsForEmail(ctx context.Context, email string, role models.Role) ([]string, error) {
	field := role.EmailArrayField()
	if field == "" {
		return nil, errors.New("coordinatorassign: unknown role")
	}
	cur, err := s.c.Find(ctx, bson.M{field: email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var a models.CoordinatorAssignment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		ids = append(ids, a.MasterProjectID)
	}
	return ids, cur.Err()
}

// DeleteByProject removes the assignment document for a project.
// Used when a master project is deleted.
func (s *Store) DeleteByProject(ctx context.Context, masterProjectID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"masterProjectId": masterProjectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

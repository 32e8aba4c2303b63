// internal/app/store/masterprojects/masterprojectstore.go
package masterprojectstore

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
	ErrNotFound  = errors.New("master project not found")
	ErrDuplicate = errors.New("a master project with this id already exists")
)

// idRetries bounds how many times Create re-rolls a colliding
// masterProjectId before giving up.
const idRetries = 5

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("master_projects"), ids: identifier.New()}
}

// Create inserts a new master project, generating its masterProjectId.
// A collision with an existing id is resolved by re-generating; the
// unique index on masterProjectId is what detects the collision.
func (s *Store) Create(ctx context.Context, mp models.MasterProject) (models.MasterProject, error) {
	now := time.Now().UTC()
	mp.ID = primitive.NewObjectID()
	if mp.ProjectStatus == "" {
		mp.ProjectStatus = models.ProjectNotStarted
	}
	mp.CreatedAt = now
	mp.UpdatedAt = now

	for i := 0; i < idRetries; i++ {
		mp.MasterProjectID = s.ids.MasterProjectID()
		_, err := s.c.InsertOne(ctx, mp)
		if err == nil {
			return mp, nil
		}
		if !wafflemongo.IsDup(err) {
			return models.MasterProject{}, err
		}
	}
	return models.MasterProject{}, ErrDuplicate
}

// GetByMasterProjectID retrieves a project by its generated id.
func (s *Store) GetByMasterProjectID(ctx context.Context, masterProjectID string) (models.MasterProject, error) {
	var mp models.MasterProject
	err := s.c.FindOne(ctx, bson.M{"masterProjectId": masterProjectID}).Decode(&mp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.MasterProject{}, ErrNotFound
		}
		return models.MasterProject{}, err
	}
	return mp, nil
}

// ByOwner returns the projects created by the given owner email.
func (s *Store) ByOwner(ctx context.Context, ownerEmail string, opts ...*options.FindOptions) ([]models.MasterProject, error) {
	return s.find(ctx, bson.M{"masterProjectOwnerEmailId": ownerEmail}, opts...)
}

// Find returns projects matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.MasterProject, error) {
	return s.find(ctx, filter, opts...)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.MasterProject, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MasterProject
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of projects matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update modifies a project's mutable fields, keyed by masterProjectId.
func (s *Store) Update(ctx context.Context, masterProjectID string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx, bson.M{"masterProjectId": masterProjectID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus transitions the project lifecycle status.
func (s *Store) SetStatus(ctx context.Context, masterProjectID, status string) error {
	return s.Update(ctx, masterProjectID, bson.M{"projectStatus": status})
}

// Delete removes a project by masterProjectId.
func (s *Store) Delete(ctx context.Context, masterProjectID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"masterProjectId": masterProjectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

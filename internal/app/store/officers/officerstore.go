// internal/app/store/officers/officerstore.go
package officerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/surveytrack/internal/app/system/normalize"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store spans the four structurally identical officer collections, one
// per coordinator role (see models.Role.Collection).
type Store struct {
	db *mongo.Database
}

var (
	ErrNotFound    = errors.New("officer not found")
	ErrDuplicate   = errors.New("officer already recorded for this project")
	ErrUnknownRole = errors.New("unknown officer role")
)

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(role models.Role) (*mongo.Collection, error) {
	name := role.Collection()
	if name == "" {
		return nil, ErrUnknownRole
	}
	return s.db.Collection(name), nil
}

// Insert records one officer for a project. The unique index on
// (masterProjectId, email) turns a repeat insert into ErrDuplicate,
// which the bulk pipeline treats as its duplicate signal rather than a
// failure.
func (s *Store) Insert(ctx context.Context, role models.Role, o models.Officer) (models.Officer, error) {
	c, err := s.coll(role)
	if err != nil {
		return models.Officer{}, err
	}
	o.ID = primitive.NewObjectID()
	o.Email = normalize.Email(o.Email)
	o.Code = normalize.Code(o.Code)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	if _, err := c.InsertOne(ctx, o); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Officer{}, ErrDuplicate
		}
		return models.Officer{}, err
	}
	return o, nil
}

// GetByProjectAndEmail retrieves one officer row.
func (s *Store) GetByProjectAndEmail(ctx context.Context, role models.Role, masterProjectID, email string) (models.Officer, error) {
	c, err := s.coll(role)
	if err != nil {
		return models.Officer{}, err
	}
	var o models.Officer
	err = c.FindOne(ctx, bson.M{
		"masterProjectId": masterProjectID,
		"email":           normalize.Email(email),
	}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Officer{}, ErrNotFound
		}
		return models.Officer{}, err
	}
	return o, nil
}

// ByProject returns all officers of one role for a project.
func (s *Store) ByProject(ctx context.Context, role models.Role, masterProjectID string, opts ...*options.FindOptions) ([]models.Officer, error) {
	c, err := s.coll(role)
	if err != nil {
		return nil, err
	}
	cur, err := c.Find(ctx, bson.M{"masterProjectId": masterProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Officer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectIDsForEmail returns the masterProjectIds this email serves in
// the given role, newest first.
func (s *Store) ProjectIDsForEmail(ctx context.Context, role models.Role, email string) ([]string, error) {
	c, err := s.coll(role)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := c.Find(ctx, bson.M{"email": normalize.Email(email)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var o models.Officer
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		ids = append(ids, o.MasterProjectID)
	}
	return ids, cur.Err()
}

// Delete removes one officer row.
func (s *Store) Delete(ctx context.Context, role models.Role, masterProjectID, email string) (int64, error) {
	c, err := s.coll(role)
	if err != nil {
		return 0, err
	}
	res, err := c.DeleteOne(ctx, bson.M{
		"masterProjectId": masterProjectID,
		"email":           normalize.Email(email),
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes all officers of one role for a project.
func (s *Store) DeleteByProject(ctx context.Context, role models.Role, masterProjectID string) (int64, error) {
	c, err := s.coll(role)
	if err != nil {
		return 0, err
	}
	res, err := c.DeleteMany(ctx, bson.M{"masterProjectId": masterProjectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/schools/schoolstore.go
package schoolstore

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds the school reference data keyed by UDISE code.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("school not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schools")}
}

// InsertMany bulk-loads school reference rows. Rows whose UDISE code is
// already present are skipped rather than failing the batch; the insert
// runs unordered so one duplicate does not abort the rest.
func (s *Store) InsertMany(ctx context.Context, schools []models.School) (inserted int64, err error) {
	if len(schools) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(schools))
	for _, sc := range schools {
		sc.ID = primitive.NewObjectID()
		docs = append(docs, sc)
	}
	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		inserted = int64(len(res.InsertedIDs))
	}
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			for _, we := range bulkErr.WriteErrors {
				if we.Code != 11000 {
					return inserted, err
				}
			}
			return inserted, nil
		}
		return inserted, err
	}
	return inserted, nil
}

// GetByCode retrieves one school by UDISE code.
func (s *Store) GetByCode(ctx context.Context, udise int64) (models.School, error) {
	var sc models.School
	err := s.c.FindOne(ctx, bson.M{"udise_sch_code": udise}).Decode(&sc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.School{}, ErrNotFound
		}
		return models.School{}, err
	}
	return sc, nil
}

// ByCodes returns the schools whose UDISE code is in codes. Codes with
// no matching school are simply absent from the result.
func (s *Store) ByCodes(ctx context.Context, codes []int64) ([]models.School, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"udise_sch_code": bson.M{"$in": codes}})
}

// ByBlockCode returns the schools in one block, restricted to codes.
func (s *Store) ByBlockCode(ctx context.Context, blockCode int64, codes []int64) ([]models.School, error) {
	return s.find(ctx, bson.M{
		"block_cd_1":     blockCode,
		"udise_sch_code": bson.M{"$in": codes},
	})
}

// ByDistrictCode returns the schools in one district, restricted to
// codes.
func (s *Store) ByDistrictCode(ctx context.Context, districtCode int64, codes []int64) ([]models.School, error) {
	return s.find(ctx, bson.M{
		"district_cd":    districtCode,
		"udise_sch_code": bson.M{"$in": codes},
	})
}

// ByDivision returns the schools in one division, restricted to codes.
// Division names are matched case-insensitively because upload sources
// disagree on capitalization.
func (s *Store) ByDivision(ctx context.Context, division string, codes []int64) ([]models.School, error) {
	pattern := "^" + regexQuoteMeta(strings.TrimSpace(division)) + "$"
	return s.find(ctx, bson.M{
		"Division":       bson.M{"$regex": pattern, "$options": "i"},
		"udise_sch_code": bson.M{"$in": codes},
	})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.School, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.School
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of schools matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Update modifies a school row, keyed by UDISE code.
func (s *Store) Update(ctx context.Context, udise int64, set bson.M) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"udise_sch_code": udise}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCode removes a school row.
func (s *Store) DeleteByCode(ctx context.Context, udise int64) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"udise_sch_code": udise})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// regexQuoteMeta escapes regex metacharacters in a literal value.
func regexQuoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

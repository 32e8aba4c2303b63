// internal/app/system/indexes/indexes.go

// Package indexes reconciles the index set at startup. The unique
// indexes here are load-bearing, not just performance: the ID
// generators retry on masterProjectId/surveyId conflicts, and officer
// bulk ingestion treats a (masterProjectId, email) insert conflict as
// its duplicate signal instead of a read-before-write check.
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup; every ensure step is idempotent.
// Problems are aggregated so one bad collection does not hide the rest.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{"master_projects", []mongo.IndexModel{
			unique("masterProjectId_unique", bson.D{{Key: "masterProjectId", Value: 1}}),
		}},
		{"surveys", []mongo.IndexModel{
			unique("surveyId_unique", bson.D{{Key: "surveyId", Value: 1}}),
			plain("surveys_by_project", bson.D{{Key: "masterProjectId", Value: 1}}),
		}},
		{"survey_locations", []mongo.IndexModel{
			unique("surveyLocation_per_project", bson.D{{Key: "masterProjectId", Value: 1}}),
		}},
		{"survey_answers", []mongo.IndexModel{
			plain("answers_by_triple", bson.D{
				{Key: "masterProjectId", Value: 1},
				{Key: "surveyId", Value: 1},
				{Key: "surveyFormId", Value: 1},
				{Key: "udise_sch_code", Value: 1},
			}),
			plain("answers_by_created", bson.D{{Key: "created_at", Value: 1}}),
		}},
		{"sme_survey_answers", []mongo.IndexModel{
			plain("sme_answers_by_triple", bson.D{
				{Key: "masterProjectId", Value: 1},
				{Key: "surveyId", Value: 1},
				{Key: "surveyFormId", Value: 1},
				{Key: "udise_sch_code", Value: 1},
			}),
		}},
		{"coordinator_assignments", []mongo.IndexModel{
			unique("assignment_per_project", bson.D{{Key: "masterProjectId", Value: 1}}),
		}},
		{"schools", []mongo.IndexModel{
			unique("udise_unique", bson.D{{Key: "udise_sch_code", Value: 1}}),
			plain("schools_by_block", bson.D{{Key: "block_cd_1", Value: 1}}),
			plain("schools_by_district", bson.D{{Key: "district_cd", Value: 1}}),
		}},
		{"users", []mongo.IndexModel{
			plain("users_by_email_role", bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}}),
		}},
	}

	// Each officer collection gets the same unique key.
	for _, role := range models.Roles() {
		steps = append(steps, struct {
			coll   string
			models []mongo.IndexModel
		}{role.Collection(), []mongo.IndexModel{
			unique("officer_per_project_email", bson.D{
				{Key: "masterProjectId", Value: 1},
				{Key: "email", Value: 1},
			}),
		}})
	}

	for _, s := range steps {
		if err := ensureIndexSet(ctx, db.Collection(s.coll), s.models); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

func plain(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
}

// ensureIndexSet creates the desired indexes. CreateMany is idempotent
// for identical specs; an IndexOptionsConflict means an index with the
// same keys exists under different options, in which case it is dropped
// by name and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, specs []mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, specs)
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), "IndexOptionsConflict") &&
		!strings.Contains(err.Error(), "IndexKeySpecsConflict") {
		return err
	}

	for _, spec := range specs {
		if spec.Options == nil || spec.Options.Name == nil {
			continue
		}
		_, _ = coll.Indexes().DropOne(ctx, *spec.Options.Name)
	}
	_, err = coll.Indexes().CreateMany(ctx, specs)
	return err
}

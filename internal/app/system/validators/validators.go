// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/surveytrack/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Core collections this app uses
	ensure("master_projects", masterProjectsSchema())
	ensure("surveys", surveysSchema())
	ensure("users", usersSchema())
	ensure("schools", schoolsSchema())

	// Rollout collections
	ensure("survey_locations", surveyLocationsSchema())
	ensure("coordinator_assignments", coordinatorAssignmentsSchema())
	for _, role := range models.Roles() {
		ensure(role.Collection(), officersSchema())
	}

	// Answer collections
	ensure("survey_answers", answersSchema())
	ensure("sme_survey_answers", answersSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func masterProjectsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"masterProjectId", "masterProjectName", "masterProjectOwnerEmailId"},
			"properties": bson.M{
				"masterProjectId":           bson.M{"bsonType": "string", "pattern": "^[A-Z]{4}[0-9]{4}$"},
				"masterProjectName":         bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"masterProjectPurpose":      bson.M{"bsonType": "string"},
				"masterProjectOwnerName":    bson.M{"bsonType": "string"},
				"masterProjectOwnerEmailId": bson.M{"bsonType": "string", "minLength": 1},
				"projectStatus":             bson.M{"bsonType": "string"},
				"finalSubmit":               bson.M{"bsonType": "bool"},
				"created_at":                bson.M{"bsonType": "date"},
				"updated_at":                bson.M{"bsonType": "date"},
			},
		},
	}
}

func surveysSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"surveyId", "masterProjectId", "surveyName"},
			"properties": bson.M{
				"surveyId":        bson.M{"bsonType": "string", "pattern": "^[A-Z]{3}[0-9]{3}$"},
				"masterProjectId": bson.M{"bsonType": "string"},
				"surveyName":      bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"surveyFormId":    bson.M{"bsonType": "string"},
				"actualStartDate": bson.M{"bsonType": bson.A{"date", "null"}},
				"actualEndDate":   bson.M{"bsonType": bson.A{"date", "null"}},
				"created_at":      bson.M{"bsonType": "date"},
				"updated_at":      bson.M{"bsonType": "date"},
			},
		},
	}
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "role"},
			"properties": bson.M{
				"name":  bson.M{"bsonType": "string"},
				"email": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"role":  bson.M{"enum": roleEnum()},
			},
		},
	}
}

func schoolsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"udise_sch_code", "block_cd_1", "district_cd", "Division"},
			"properties": bson.M{
				"udise_sch_code": bson.M{"bsonType": bson.A{"long", "int"}},
				"school_name":    bson.M{"bsonType": "string"},
				"block_cd_1":     bson.M{"bsonType": bson.A{"long", "int"}},
				"block_name":     bson.M{"bsonType": "string"},
				"district_cd":    bson.M{"bsonType": bson.A{"long", "int"}},
				"district_name":  bson.M{"bsonType": "string"},
				"Division":       bson.M{"bsonType": "string", "minLength": 1},
			},
		},
	}
}

func surveyLocationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"masterProjectId", "surveyLocations"},
			"properties": bson.M{
				"masterProjectId": bson.M{"bsonType": "string"},
				"surveyLocations": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"udise_sch_code"},
						"properties": bson.M{
							"udise_sch_code": bson.M{"bsonType": bson.A{"long", "int"}},
						},
					},
				},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func coordinatorAssignmentsSchema() bson.M {
	emails := bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"masterProjectId"},
			"properties": bson.M{
				"masterProjectId":           bson.M{"bsonType": "string"},
				"surveyAdmin":               bson.M{"bsonType": "string"},
				"blockCoordinatorEmails":    emails,
				"districtCoordinatorEmails": emails,
				"divisionCoordinatorEmails": emails,
				"smeEmails":                 emails,
				"created_at":                bson.M{"bsonType": "date"},
			},
		},
	}
}

func officersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"masterProjectId", "email"},
			"properties": bson.M{
				"masterProjectId": bson.M{"bsonType": "string"},
				"surveyAdmin":     bson.M{"bsonType": "string"},
				"email":           bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"code":            bson.M{"bsonType": "string"},
				"created_at":      bson.M{"bsonType": "date"},
			},
		},
	}
}

// answersSchema covers both regular and SME answer collections, which
// share a shape and differ only in default status.
func answersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"masterProjectId", "surveyId", "udise_sch_code", "status"},
			"properties": bson.M{
				"masterProjectId":    bson.M{"bsonType": "string"},
				"surveyId":           bson.M{"bsonType": "string"},
				"surveyFormId":       bson.M{"bsonType": "string"},
				"udise_sch_code":     bson.M{"bsonType": bson.A{"long", "int"}},
				"surveyConductEmail": bson.M{"bsonType": "string"},
				"status":             bson.M{"enum": bson.A{models.StatusSurveyed, models.StatusAudited, models.StatusPending}},
				"created_at":         bson.M{"bsonType": "date"},
				"updated_at":         bson.M{"bsonType": "date"},
			},
		},
	}
}

func roleEnum() bson.A {
	out := bson.A{}
	for _, r := range models.Roles() {
		out = append(out, string(r))
	}
	return out
}

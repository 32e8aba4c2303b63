// internal/domain/models/officer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies one of the four coordinator roles. The string values
// double as the role names recorded on User documents.
type Role string

const (
	RoleBlock    Role = "block"
	RoleDistrict Role = "district"
	RoleDivision Role = "division"
	RoleSME      Role = "SME"
)

// Roles returns all four coordinator roles.
func Roles() []Role {
	return []Role{RoleBlock, RoleDistrict, RoleDivision, RoleSME}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBlock, RoleDistrict, RoleDivision, RoleSME:
		return true
	}
	return false
}

// Collection returns the Mongo collection name holding officer records
// for this role.
func (r Role) Collection() string {
	switch r {
	case RoleBlock:
		return "block_officers"
	case RoleDistrict:
		return "district_officers"
	case RoleDivision:
		return "division_officers"
	case RoleSME:
		return "sme_officers"
	}
	return ""
}

// EmailArrayField returns the CoordinatorAssignment array field that
// collects emails for this role.
func (r Role) EmailArrayField() string {
	switch r {
	case RoleBlock:
		return "blockCoordinatorEmails"
	case RoleDistrict:
		return "districtCoordinatorEmails"
	case RoleDivision:
		return "divisionCoordinatorEmails"
	case RoleSME:
		return "smeEmails"
	}
	return ""
}

// Officer is a role-scoped assignment: one email in charge of one
// geographic code within a MasterProject. The four roles live in four
// structurally identical collections (see Role.Collection); a unique
// index on (masterProjectId, email) in each collection is what makes
// bulk-upload duplicate detection deterministic.
//
// Code is the block code, district code, or division name the officer is
// scoped to; it stays a string because division codes are names, not
// numbers.
type Officer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	SurveyAdmin     string             `bson:"surveyAdmin" json:"surveyAdmin"`
	Email           string             `bson:"email" json:"email"`
	Code            string             `bson:"code,omitempty" json:"code,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

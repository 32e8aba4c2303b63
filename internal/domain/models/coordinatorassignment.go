// internal/domain/models/coordinatorassignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoordinatorAssignment holds the per-project coordinator email lists,
// one document per MasterProject. The officer collections are the
// authoritative record of who is scoped to which code; these arrays are
// the "emails notified/authorized" view and are written only by the same
// bulk-ingestion path that writes the officer rows, via $addToSet so an
// email never appears twice in the same role list.
type CoordinatorAssignment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	SurveyAdmin     string             `bson:"surveyAdmin" json:"surveyAdmin"`

	BlockCoordinatorEmails    []string `bson:"blockCoordinatorEmails" json:"blockCoordinatorEmails"`
	DistrictCoordinatorEmails []string `bson:"districtCoordinatorEmails" json:"districtCoordinatorEmails"`
	DivisionCoordinatorEmails []string `bson:"divisionCoordinatorEmails" json:"divisionCoordinatorEmails"`
	SMEEmails                 []string `bson:"smeEmails" json:"smeEmails"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// EmailsForRole returns the email list for the given role.
func (a CoordinatorAssignment) EmailsForRole(r Role) []string {
	switch r {
	case RoleBlock:
		return a.BlockCoordinatorEmails
	case RoleDistrict:
		return a.DistrictCoordinatorEmails
	case RoleDivision:
		return a.DivisionCoordinatorEmails
	case RoleSME:
		return a.SMEEmails
	}
	return nil
}

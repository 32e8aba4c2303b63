// internal/domain/models/survey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey is a single data-collection run inside a MasterProject.
//
// SurveyID is generated from the survey name (3-letter prefix + 3 random
// digits) and is unique across all surveys. ActualStartDate/ActualEndDate
// are derived from the first and last SurveyAnswer recorded for the
// survey; they are never set by callers directly.
type Survey struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SurveyID        string             `bson:"surveyId" json:"surveyId"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	OwnerEmailID    string             `bson:"masterProjectOwnerEmailId" json:"masterProjectOwnerEmailId"`

	Name      string    `bson:"surveyName" json:"surveyName"`
	Purpose   string    `bson:"surveyPurpose" json:"surveyPurpose"`
	StartDate time.Time `bson:"surveyStartDate" json:"surveyStartDate"`
	EndDate   time.Time `bson:"surveyEndDate" json:"surveyEndDate"`

	// SurveyFormID references the question set used for this run.
	SurveyFormID string `bson:"surveyFormId,omitempty" json:"surveyFormId,omitempty"`

	ActualStartDate *time.Time `bson:"actualStartDate,omitempty" json:"actualStartDate,omitempty"`
	ActualEndDate   *time.Time `bson:"actualEndDate,omitempty" json:"actualEndDate,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

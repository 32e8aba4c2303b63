// internal/domain/models/surveyanswer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer status values.
const (
	StatusSurveyed = "Surveyed"
	StatusAudited  = "Audited"
	StatusPending  = "Pending"
)

// QuestionAnswer is one question/answer pair inside a submission.
// Answers are stored as an array because multi-select questions produce
// more than one value.
type QuestionAnswer struct {
	Question string   `bson:"question" json:"question"`
	Answer   []string `bson:"answer" json:"answer"`
}

// SurveyAnswer is one submitted response for a school under a
// (masterProject, survey, surveyForm) triple. Resubmission for the same
// school is allowed; "surveyed" means at least one matching answer
// exists. CreatedAt is the basis for a Survey's actual start/end dates.
type SurveyAnswer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	SurveyID        string             `bson:"surveyId" json:"surveyId"`
	SurveyFormID    string             `bson:"surveyFormId" json:"surveyFormId"`
	UDISECode       int64              `bson:"udise_sch_code" json:"udise_sch_code"`

	ConductEmail string           `bson:"surveyConductEmail" json:"surveyConductEmail"`
	Questions    []QuestionAnswer `bson:"surveyQuestions" json:"surveyQuestions"`
	Status       string           `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SMESurveyAnswer is an SME audit submission. Same shape as SurveyAnswer
// but recorded in its own collection with status "Audited" by default.
type SMESurveyAnswer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	SurveyID        string             `bson:"surveyId" json:"surveyId"`
	SurveyFormID    string             `bson:"surveyFormId" json:"surveyFormId"`
	UDISECode       int64              `bson:"udise_sch_code" json:"udise_sch_code"`

	ConductEmail string           `bson:"surveyConductEmail" json:"surveyConductEmail"`
	Questions    []QuestionAnswer `bson:"surveyQuestions" json:"surveyQuestions"`
	Status       string           `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/school.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// School is reference data keyed by UDISE code. The role resolver uses
// BlockCode, DistrictCode, and Division to decide which coordinator is
// responsible for the school; everything else is descriptive.
type School struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UDISECode    int64              `bson:"udise_sch_code" json:"udise_sch_code"`
	Name         string             `bson:"school_name,omitempty" json:"school_name,omitempty"`
	BlockCode    int64              `bson:"block_cd_1" json:"block_cd_1"`
	BlockName    string             `bson:"block_name,omitempty" json:"block_name,omitempty"`
	DistrictCode int64              `bson:"district_cd" json:"district_cd"`
	DistrictName string             `bson:"district_name,omitempty" json:"district_name,omitempty"`
	Division     string             `bson:"Division" json:"Division"`

	// SurveyStatus is populated by the role resolver from the latest
	// matching answer; it is never stored on the school document.
	SurveyStatus string `bson:"-" json:"status,omitempty"`
}

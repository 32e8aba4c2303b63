// internal/domain/models/masterproject.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project status values for MasterProject.ProjectStatus.
const (
	ProjectNotStarted = "Not-Started"
	ProjectStarted    = "Started"
	ProjectInProgress = "In-progress"
	ProjectCompleted  = "Completed"
)

// MasterProject is a top-level survey campaign. It owns one or more
// Surveys and exactly one SurveyLocation document (the school universe
// registered for the campaign).
//
// MasterProjectID is the short human-readable identifier (4 letters +
// 4 digits) generated at creation time; it is the key the rest of the
// system uses, not the Mongo _id. The bson field names match the wire
// format the dashboards already consume.
type MasterProject struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`
	Name            string             `bson:"masterProjectName" json:"masterProjectName"`
	Purpose         string             `bson:"masterProjectPurpose" json:"masterProjectPurpose"`
	StartDate       time.Time          `bson:"masterProjectStartDate" json:"masterProjectStartDate"`
	EndDate         time.Time          `bson:"masterProjectEndDate" json:"masterProjectEndDate"`

	OwnerName    string `bson:"masterProjectOwnerName" json:"masterProjectOwnerName"`
	OwnerEmailID string `bson:"masterProjectOwnerEmailId" json:"masterProjectOwnerEmailId"`
	OwnerMobile  int64  `bson:"masterProjectOwnerMoNumber" json:"masterProjectOwnerMoNumber"`

	ConductBy       string `bson:"masterProjectConductBy,omitempty" json:"masterProjectConductBy,omitempty"`
	RequireAudit    bool   `bson:"masterProjectRequireAudit" json:"masterProjectRequireAudit"`
	AuditBy         string `bson:"masterProjectAuditBy,omitempty" json:"masterProjectAuditBy,omitempty"`
	RequireApproval bool   `bson:"masterProjectRequireApproval" json:"masterProjectRequireApproval"`
	ApprovedBy      string `bson:"masterProjectApprovedBy,omitempty" json:"masterProjectApprovedBy,omitempty"`

	AuditStartDate    time.Time `bson:"auditStartDate" json:"auditStartDate"`
	AuditEndDate      time.Time `bson:"auditEndDate" json:"auditEndDate"`
	ApprovalStartDate time.Time `bson:"approvelStartDate" json:"approvelStartDate"`
	ApprovalEndDate   time.Time `bson:"approvelEndDate" json:"approvelEndDate"`

	FinalSubmit   bool   `bson:"finalSubmit" json:"finalSubmit"`
	ProjectStatus string `bson:"projectStatus" json:"projectStatus"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// internal/domain/models/surveylocation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationEntry is one registered school inside a SurveyLocation.
type LocationEntry struct {
	UDISECode int64 `bson:"udise_sch_code" json:"udise_sch_code"`
}

// SurveyLocation is the registered universe of schools for one
// MasterProject. Exactly one document exists per masterProjectId; the
// Locations array is maintained as a distinct set ($addToSet), so
// re-uploading the same CSV does not grow it.
//
// The project snapshot fields are denormalized from the MasterProject at
// first upload so the location list is self-describing for exports.
type SurveyLocation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MasterProjectID string             `bson:"masterProjectId" json:"masterProjectId"`

	ProjectName    string    `bson:"masterProjectName" json:"masterProjectName"`
	ProjectPurpose string    `bson:"masterProjectPurpose,omitempty" json:"masterProjectPurpose,omitempty"`
	OwnerName      string    `bson:"masterProjectOwnerName,omitempty" json:"masterProjectOwnerName,omitempty"`
	OwnerEmailID   string    `bson:"masterProjectOwnerEmailId,omitempty" json:"masterProjectOwnerEmailId,omitempty"`
	StartDate      time.Time `bson:"masterProjectStartDate,omitempty" json:"masterProjectStartDate,omitempty"`
	EndDate        time.Time `bson:"masterProjectEndDate,omitempty" json:"masterProjectEndDate,omitempty"`

	Locations []LocationEntry `bson:"surveyLocations" json:"surveyLocations"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DistinctCodes returns the set of UDISE codes in the location list.
// Documents written before the $addToSet change can still hold duplicate
// entries, so readers collapse them here.
func (l SurveyLocation) DistinctCodes() []int64 {
	seen := make(map[int64]struct{}, len(l.Locations))
	out := make([]int64, 0, len(l.Locations))
	for _, e := range l.Locations {
		if _, ok := seen[e.UDISECode]; ok {
			continue
		}
		seen[e.UDISECode] = struct{}{}
		out = append(out, e.UDISECode)
	}
	return out
}

// internal/app/store/queries/assignedprojects/assignedprojects.go
package assignedprojects

import (
	"context"

	"github.com/dalemusser/surveytrack/internal/app/store/coordinatorassign"
	masterprojectstore "github.com/dalemusser/surveytrack/internal/app/store/masterprojects"
	officerstore "github.com/dalemusser/surveytrack/internal/app/store/officers"
	userstore "github.com/dalemusser/surveytrack/internal/app/store/users"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Resolver answers "which projects does this officer serve" and
// "which accounts serve this project", joining the officer tables, the
// coordinator assignment lists, and the user directory.
type Resolver struct {
	Officers    *officerstore.Store
	Assignments *coordinatorassign.Store
	Projects    *masterprojectstore.Store
	Users       *userstore.Store
}

// ProjectsForOfficer returns the master projects in which the email
// holds the given role. The officer tables are the authoritative
// record, so the lookup goes through them rather than the assignment
// arrays.
func (r *Resolver) ProjectsForOfficer(ctx context.Context, role models.Role, email string) ([]models.MasterProject, error) {
	ids, err := r.Officers.ProjectIDsForEmail(ctx, role, email)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.Projects.Find(ctx, bson.M{"masterProjectId": bson.M{"$in": ids}})
}

// UsersForProject returns the accounts behind a project's coordinator
// list for one role. Emails in the list without a matching account are
// skipped.
func (r *Resolver) UsersForProject(ctx context.Context, masterProjectID string, role models.Role) ([]models.User, error) {
	emails, err := r.Assignments.EmailsForRole(ctx, masterProjectID, role)
	if err != nil {
		return nil, err
	}
	if len(emails) == 0 {
		return nil, nil
	}
	return r.Users.ByEmails(ctx, emails, role)
}

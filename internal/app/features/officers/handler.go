// internal/app/features/officers/handler.go
package officers

import (
	"context"
	"net/http"

	"github.com/dalemusser/surveytrack/internal/app/store/coordinatorassign"
	officerstore "github.com/dalemusser/surveytrack/internal/app/store/officers"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/assignedprojects"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/roleschools"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"github.com/dalemusser/surveytrack/internal/app/system/csvutil"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/normalize"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the officer bulk-upload and lookup endpoints for all
// four coordinator roles. The role arrives as a URL segment and is
// normalized before use.
type Handler struct {
	Officers  *officerstore.Store
	Uploader  *officerstore.Uploader
	Assigned  *assignedprojects.Resolver
	Schools   *roleschools.Resolver
	Assignmts *coordinatorassign.Store
	Log       *zap.Logger
}

func roleParam(r *http.Request) (models.Role, bool) {
	role := normalize.Role(chi.URLParam(r, "role"))
	return role, role.Valid()
}

// uploadResponse wraps the batch partition with any row failures, so a
// partially failed batch still reports what went through.
type uploadResponse struct {
	officerstore.Result
	Failures []officerstore.RowFailure `json:"failures,omitempty"`
}

// Upload handles POST /officers/{role}/{masterProjectId}/upload. The
// CSV arrives as multipart field "csv"; the uploading admin's email as
// form field "surveyAdmin".
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	projectID := chi.URLParam(r, "masterProjectId")

	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	file, _, err := r.FormFile("csv")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file is required")
		return
	}
	defer file.Close()
	surveyAdmin := normalize.Email(r.FormValue("surveyAdmin"))

	rows, rowErrs, err := csvutil.ParseOfficerCSV(file, role)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file could not be parsed: "+err.Error())
		return
	}

	result, err := h.Uploader.Upload(ctx, role, projectID, surveyAdmin, rows)
	resp := uploadResponse{Result: result}
	for _, re := range rowErrs {
		resp.Failures = append(resp.Failures, officerstore.RowFailure{Line: re.Line, Err: re.Reason})
	}
	if err != nil {
		batchErr, ok := err.(*officerstore.BatchError)
		if !ok {
			h.Log.Error("officer upload failed", zap.String("role", string(role)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not process officer upload")
			return
		}
		resp.Failures = append(resp.Failures, batchErr.Failures...)
	}
	httpjson.Write(w, http.StatusOK, resp)
}

// List handles GET /officers/{role}/{masterProjectId}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	projectID := chi.URLParam(r, "masterProjectId")

	officers, err := h.Officers.ByProject(ctx, role, projectID)
	if err != nil {
		h.Log.Error("list officers failed", zap.String("role", string(role)), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list officers")
		return
	}
	httpjson.Write(w, http.StatusOK, officers)
}

// Coordinators handles GET /officers/{role}/{masterProjectId}/coordinators:
// the user accounts behind the project's coordinator email list.
func (h *Handler) Coordinators(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	projectID := chi.URLParam(r, "masterProjectId")

	users, err := h.Assigned.UsersForProject(ctx, projectID, role)
	if err != nil {
		h.Log.Error("resolve coordinators failed", zap.String("role", string(role)), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not resolve coordinators")
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// AssignedProjects handles GET /officers/{role}/assigned-projects:
// the master projects the given email serves in this role.
func (h *Handler) AssignedProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	email := normalize.Email(query.Get(r, "email"))
	if email == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	projects, err := h.Assigned.ProjectsForOfficer(ctx, role, email)
	if err != nil {
		h.Log.Error("resolve assigned projects failed", zap.String("role", string(role)), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not resolve assigned projects")
		return
	}
	httpjson.Write(w, http.StatusOK, projects)
}

// SchoolList handles GET /officers/{role}/{masterProjectId}/schools:
// the officer's slice of the registered school universe, each school
// annotated with its latest answer status for the requested run.
func (h *Handler) SchoolList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	projectID := chi.URLParam(r, "masterProjectId")
	email := normalize.Email(query.Get(r, "email"))
	surveyID := query.Get(r, "surveyId")
	surveyFormID := query.Get(r, "surveyFormId")
	if email == "" || surveyID == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and surveyId are required")
		return
	}

	schools, err := h.Schools.SchoolsForOfficer(ctx, role, projectID, surveyID, surveyFormID, email)
	if err != nil {
		switch err {
		case officerstore.ErrNotFound:
			httpjson.Error(w, http.StatusNotFound, "officer not found for this project")
		case surveylocationstore.ErrNotFound:
			httpjson.Error(w, http.StatusNotFound, "no survey locations registered for project")
		case roleschools.ErrBadCode:
			httpjson.Error(w, http.StatusUnprocessableEntity, "officer scope code is not numeric")
		default:
			h.Log.Error("resolve officer schools failed", zap.String("role", string(role)), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not resolve schools")
		}
		return
	}
	httpjson.Write(w, http.StatusOK, schools)
}

// Delete handles DELETE /officers/{role}/{masterProjectId}/{email}.
// The email also leaves the project's coordinator list.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, ok := roleParam(r)
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "unknown role")
		return
	}
	projectID := chi.URLParam(r, "masterProjectId")
	email := normalize.Email(chi.URLParam(r, "email"))

	n, err := h.Officers.Delete(ctx, role, projectID, email)
	if err != nil {
		h.Log.Error("delete officer failed", zap.String("role", string(role)), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete officer")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "officer not found")
		return
	}
	if err := h.Assignmts.RemoveEmail(ctx, projectID, role, email); err != nil {
		h.Log.Warn("remove coordinator email failed", zap.String("email", email), zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/surveytrack/internal/app/store/coordinatorassign"
	masterprojectstore "github.com/dalemusser/surveytrack/internal/app/store/masterprojects"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	surveystore "github.com/dalemusser/surveytrack/internal/app/store/surveys"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/paging"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Handler serves the master-project CRUD endpoints.
type Handler struct {
	Projects    *masterprojectstore.Store
	Surveys     *surveystore.Store
	Locations   *surveylocationstore.Store
	Assignments *coordinatorassign.Store
	Log         *zap.Logger
}

func NewHandler(projects *masterprojectstore.Store, surveys *surveystore.Store, locations *surveylocationstore.Store, assignments *coordinatorassign.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:    projects,
		Surveys:     surveys,
		Locations:   locations,
		Assignments: assignments,
		Log:         logger,
	}
}

type createRequest struct {
	MasterProjectData models.MasterProject `json:"masterProjectData"`
	SubSurveyData     []models.Survey      `json:"subSurveyData"`
}

type createResponse struct {
	MasterProject models.MasterProject `json:"masterProject"`
	SubSurveys    []models.Survey      `json:"subSurveys"`
}

// Create handles POST /master-projects. The body carries the project
// plus any sub-surveys to open under it in one request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mp := req.MasterProjectData
	if mp.Name == "" || mp.OwnerEmailID == "" {
		httpjson.Error(w, http.StatusBadRequest, "masterProjectName and masterProjectOwnerEmailId are required")
		return
	}

	created, err := h.Projects.Create(ctx, mp)
	if err != nil {
		h.Log.Error("create master project failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create master project")
		return
	}

	subSurveys := make([]models.Survey, 0, len(req.SubSurveyData))
	for _, sv := range req.SubSurveyData {
		sv.MasterProjectID = created.MasterProjectID
		sv.OwnerEmailID = created.OwnerEmailID
		createdSurvey, err := h.Surveys.Create(ctx, sv)
		if err != nil {
			h.Log.Error("create sub survey failed",
				zap.String("master_project_id", created.MasterProjectID),
				zap.String("survey_name", sv.Name),
				zap.Error(err),
			)
			httpjson.Error(w, http.StatusInternalServerError, "could not create sub surveys")
			return
		}
		subSurveys = append(subSurveys, createdSurvey)
	}

	httpjson.Write(w, http.StatusCreated, createResponse{MasterProject: created, SubSurveys: subSurveys})
}

// List handles GET /master-projects. An optional ownerEmail query
// narrows the list to one owner's projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p := paging.Parse(r)
	filter := bson.M{}
	if owner := query.Get(r, "ownerEmail"); owner != "" {
		filter["masterProjectOwnerEmailId"] = owner
	}
	if status := query.Get(r, "projectStatus"); status != "" {
		filter["projectStatus"] = status
	}

	total, err := h.Projects.Count(ctx, filter)
	if err != nil {
		h.Log.Error("count master projects failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list master projects")
		return
	}
	results, err := h.Projects.Find(ctx, filter, p.FindOptions())
	if err != nil {
		h.Log.Error("list master projects failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list master projects")
		return
	}
	httpjson.Write(w, http.StatusOK, paging.NewPage(results, p, total))
}

// Get handles GET /master-projects/{masterProjectId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "masterProjectId")
	mp, err := h.Projects.GetByMasterProjectID(ctx, id)
	if err != nil {
		if err == masterprojectstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "master project not found")
			return
		}
		h.Log.Error("get master project failed", zap.String("master_project_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load master project")
		return
	}
	httpjson.Write(w, http.StatusOK, mp)
}

// Update handles PUT /master-projects/{masterProjectId}. Only the
// fields present in the body are changed.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "masterProjectId")
	var body map[string]interface{}
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	delete(body, "masterProjectId")
	delete(body, "_id")
	delete(body, "id")
	if len(body) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	set := bson.M{}
	for k, v := range body {
		set[k] = v
	}
	if err := h.Projects.Update(ctx, id, set); err != nil {
		if err == masterprojectstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "master project not found")
			return
		}
		h.Log.Error("update master project failed", zap.String("master_project_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update master project")
		return
	}
	mp, err := h.Projects.GetByMasterProjectID(ctx, id)
	if err != nil {
		h.Log.Error("reload master project failed", zap.String("master_project_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load master project")
		return
	}
	httpjson.Write(w, http.StatusOK, mp)
}

// Delete handles DELETE /master-projects/{masterProjectId}. The
// project's location document and coordinator assignments go with it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id := chi.URLParam(r, "masterProjectId")
	n, err := h.Projects.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete master project failed", zap.String("master_project_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete master project")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "master project not found")
		return
	}
	if _, err := h.Locations.Delete(ctx, id); err != nil {
		h.Log.Warn("delete survey locations failed", zap.String("master_project_id", id), zap.Error(err))
	}
	if _, err := h.Assignments.DeleteByProject(ctx, id); err != nil {
		h.Log.Warn("delete coordinator assignments failed", zap.String("master_project_id", id), zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

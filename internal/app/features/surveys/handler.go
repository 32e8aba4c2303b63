// internal/app/features/surveys/handler.go
package surveys

import (
	"context"
	"net/http"

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

// Handler serves the survey CRUD endpoints.
type Handler struct {
	Surveys *surveystore.Store
	Log     *zap.Logger
}

func NewHandler(surveys *surveystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Surveys: surveys, Log: logger}
}

// Create handles POST /surveys.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var sv models.Survey
	if err := httpjson.Decode(r, &sv); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sv.Name == "" || sv.MasterProjectID == "" {
		httpjson.Error(w, http.StatusBadRequest, "surveyName and masterProjectId are required")
		return
	}

	created, err := h.Surveys.Create(ctx, sv)
	if err != nil {
		h.Log.Error("create survey failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create survey")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /surveys, filtered by masterProjectId and optionally
// by the owner email.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project := query.Get(r, "masterProjectId")
	if project == "" {
		httpjson.Error(w, http.StatusBadRequest, "masterProjectId is required")
		return
	}
	owner := query.Get(r, "ownerEmail")

	p := paging.Parse(r)
	filter := bson.M{"masterProjectId": project}
	if owner != "" {
		filter["masterProjectOwnerEmailId"] = owner
	}
	total, err := h.Surveys.Count(ctx, filter)
	if err != nil {
		h.Log.Error("count surveys failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list surveys")
		return
	}

	var results []models.Survey
	if owner != "" {
		results, err = h.Surveys.ByOwnerAndProject(ctx, owner, project, p.FindOptions())
	} else {
		results, err = h.Surveys.ByProject(ctx, project, p.FindOptions())
	}
	if err != nil {
		h.Log.Error("list surveys failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list surveys")
		return
	}
	httpjson.Write(w, http.StatusOK, paging.NewPage(results, p, total))
}

// Get handles GET /surveys/{surveyId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "surveyId")
	sv, err := h.Surveys.GetBySurveyID(ctx, id)
	if err != nil {
		if err == surveystore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "survey not found")
			return
		}
		h.Log.Error("get survey failed", zap.String("survey_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load survey")
		return
	}
	httpjson.Write(w, http.StatusOK, sv)
}

// Update handles PUT /surveys/{surveyId}. Only the fields present in
// the body are changed; the generated ids and actual dates are not
// writable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "surveyId")
	var body map[string]interface{}
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, k := range []string{"surveyId", "_id", "id", "actualStartDate", "actualEndDate"} {
		delete(body, k)
	}
	if len(body) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	set := bson.M{}
	for k, v := range body {
		set[k] = v
	}
	if err := h.Surveys.Update(ctx, id, set); err != nil {
		if err == surveystore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "survey not found")
			return
		}
		h.Log.Error("update survey failed", zap.String("survey_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update survey")
		return
	}
	sv, err := h.Surveys.GetBySurveyID(ctx, id)
	if err != nil {
		h.Log.Error("reload survey failed", zap.String("survey_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load survey")
		return
	}
	httpjson.Write(w, http.StatusOK, sv)
}

// Delete handles DELETE /surveys/{surveyId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "surveyId")
	n, err := h.Surveys.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete survey failed", zap.String("survey_id", id), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete survey")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "survey not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

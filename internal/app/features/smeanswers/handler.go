// internal/app/features/smeanswers/handler.go
package smeanswers

import (
	"context"
	"net/http"
	"strconv"

	smeanswerstore "github.com/dalemusser/surveytrack/internal/app/store/smeanswers"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the SME audit-submission endpoints. Audits live in
// their own collection and never affect surveyed counts or the survey's
// actual dates.
type Handler struct {
	Answers *smeanswerstore.Store
	Log     *zap.Logger
}

func NewHandler(answers *smeanswerstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Answers: answers, Log: logger}
}

// Create handles POST /sme-survey-answers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var a models.SMESurveyAnswer
	if err := httpjson.Decode(r, &a); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if a.MasterProjectID == "" || a.SurveyID == "" || a.UDISECode == 0 {
		httpjson.Error(w, http.StatusBadRequest, "masterProjectId, surveyId and udise_sch_code are required")
		return
	}

	created, err := h.Answers.Create(ctx, a)
	if err != nil {
		h.Log.Error("create sme answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record sme answer")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /sme-survey-answers, filtered by the run triple and
// an optional udise query.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project := query.Get(r, "masterProjectId")
	surveyID := query.Get(r, "surveyId")
	formID := query.Get(r, "surveyFormId")
	if project == "" || surveyID == "" {
		httpjson.Error(w, http.StatusBadRequest, "masterProjectId and surveyId are required")
		return
	}
	var udise int64
	if raw := query.Get(r, "udise"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "udise must be numeric")
			return
		}
		udise = n
	}

	answers, err := h.Answers.ByTriple(ctx, project, surveyID, formID, udise)
	if err != nil {
		h.Log.Error("list sme answers failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list sme answers")
		return
	}
	httpjson.Write(w, http.StatusOK, answers)
}

// Update handles PUT /sme-survey-answers/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid answer id")
		return
	}
	var body map[string]interface{}
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, k := range []string{"_id", "id", "masterProjectId", "surveyId", "surveyFormId"} {
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
	if err := h.Answers.Update(ctx, id, set); err != nil {
		if err == smeanswerstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "sme answer not found")
			return
		}
		h.Log.Error("update sme answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update sme answer")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /sme-survey-answers/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid answer id")
		return
	}
	n, err := h.Answers.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete sme answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete sme answer")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "sme answer not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

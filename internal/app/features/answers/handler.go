// internal/app/features/answers/handler.go
package answers

import (
	"context"
	"net/http"
	"strconv"

	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	surveystore "github.com/dalemusser/surveytrack/internal/app/store/surveys"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the survey-answer endpoints.
type Handler struct {
	Answers   *surveyanswerstore.Store
	Surveys   *surveystore.Store
	Locations *surveylocationstore.Store
	Log       *zap.Logger
}

func NewHandler(answers *surveyanswerstore.Store, surveys *surveystore.Store, locations *surveylocationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Answers: answers, Surveys: surveys, Locations: locations, Log: logger}
}

// Create handles POST /survey-answers. After the insert, the survey's
// actual start/end dates are refreshed from the first and last answer
// on record. Resubmission for the same school creates a new document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var a models.SurveyAnswer
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
		h.Log.Error("create survey answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record survey answer")
		return
	}

	h.refreshActualDates(ctx, created)

	httpjson.Write(w, http.StatusCreated, created)
}

// refreshActualDates recomputes the survey's actual start/end dates
// from the answers recorded for the run, restricted to the project's
// registered location set. A project without a location document has
// no range to compute, so the refresh is skipped.
func (h *Handler) refreshActualDates(ctx context.Context, created models.SurveyAnswer) {
	loc, err := h.Locations.GetByProject(ctx, created.MasterProjectID)
	if err != nil {
		if err != surveylocationstore.ErrNotFound {
			h.Log.Warn("load survey locations failed", zap.String("master_project_id", created.MasterProjectID), zap.Error(err))
		}
		return
	}

	first, last, err := h.Answers.FirstAndLast(ctx, created.MasterProjectID, created.SurveyID, created.SurveyFormID, loc.DistinctCodes())
	if err != nil {
		h.Log.Warn("load answer date range failed", zap.String("survey_id", created.SurveyID), zap.Error(err))
		return
	}
	if err := h.Surveys.SetActualDates(ctx, created.MasterProjectID, created.SurveyID, first, last); err != nil && err != surveystore.ErrNotFound {
		h.Log.Warn("refresh survey actual dates failed", zap.String("survey_id", created.SurveyID), zap.Error(err))
	}
}

// List handles GET /survey-answers, filtered by the run triple and an
// optional udise query for one school.
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
		h.Log.Error("list survey answers failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list survey answers")
		return
	}
	httpjson.Write(w, http.StatusOK, answers)
}

// Get handles GET /survey-answers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid answer id")
		return
	}
	a, err := h.Answers.GetByID(ctx, id)
	if err != nil {
		if err == surveyanswerstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "survey answer not found")
			return
		}
		h.Log.Error("get survey answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load survey answer")
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// Update handles PUT /survey-answers/{id}. Typically used to flip the
// status after an audit.
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
		if err == surveyanswerstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "survey answer not found")
			return
		}
		h.Log.Error("update survey answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update survey answer")
		return
	}
	a, err := h.Answers.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("reload survey answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load survey answer")
		return
	}
	httpjson.Write(w, http.StatusOK, a)
}

// Delete handles DELETE /survey-answers/{id}.
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
		h.Log.Error("delete survey answer failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete survey answer")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "survey answer not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

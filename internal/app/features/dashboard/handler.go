// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/surveytrack/internal/app/store/queries/progress"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the progress dashboard counts.
type Handler struct {
	Progress *progress.Aggregator
	Default  progress.CountMode
	Log      *zap.Logger
}

func NewHandler(agg *progress.Aggregator, defaultMode progress.CountMode, logger *zap.Logger) *Handler {
	return &Handler{Progress: agg, Default: defaultMode, Log: logger}
}

// Count handles GET /dashboard/count/{masterProjectId}/{surveyId}/{surveyFormId}.
//
// totalSurveyed counts distinct schools unless the deployment (or a
// ?mode=submissions override) asks for raw submission volume, which
// some older clients still chart.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projectID := chi.URLParam(r, "masterProjectId")
	surveyID := chi.URLParam(r, "surveyId")
	formID := chi.URLParam(r, "surveyFormId")

	mode := h.Default
	switch query.Get(r, "mode") {
	case "submissions":
		mode = progress.CountSubmissions
	case "distinct":
		mode = progress.CountDistinctSchools
	}

	counts, err := h.Progress.Counts(ctx, projectID, surveyID, formID, mode)
	if err != nil {
		if err == surveylocationstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "no survey locations registered for project")
			return
		}
		h.Log.Error("dashboard counts failed",
			zap.String("master_project_id", projectID),
			zap.String("survey_id", surveyID),
			zap.Error(err),
		)
		httpjson.Error(w, http.StatusInternalServerError, "could not compute dashboard counts")
		return
	}
	httpjson.Write(w, http.StatusOK, counts)
}

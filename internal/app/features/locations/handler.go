// internal/app/features/locations/handler.go
package locations

import (
	"context"
	"net/http"

	masterprojectstore "github.com/dalemusser/surveytrack/internal/app/store/masterprojects"
	schoolstore "github.com/dalemusser/surveytrack/internal/app/store/schools"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	"github.com/dalemusser/surveytrack/internal/app/system/csvutil"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the survey-location endpoints.
type Handler struct {
	Projects  *masterprojectstore.Store
	Locations *surveylocationstore.Store
	Schools   *schoolstore.Store
	Log       *zap.Logger
}

func NewHandler(projects *masterprojectstore.Store, locations *surveylocationstore.Store, schools *schoolstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:  projects,
		Locations: locations,
		Schools:   schools,
		Log:       logger,
	}
}

// uploadResponse reports what one CSV upload did. Unknown codes are
// rows whose UDISE has no school record; they are never registered.
type uploadResponse struct {
	MasterProjectID string             `json:"masterProjectId"`
	TotalLocations  int                `json:"totalLocations"`
	Registered      int                `json:"registered"`
	UnknownCodes    []int64            `json:"unknownCodes,omitempty"`
	RowErrors       []csvutil.RowError `json:"rowErrors,omitempty"`
}

// Upload handles POST /survey-locations/{masterProjectId}/upload. The
// CSV arrives as multipart field "csv". Every upload is joined against
// the school reference data: codes without a school record are reported
// back and left out of the registered set.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	projectID := chi.URLParam(r, "masterProjectId")
	project, err := h.Projects.GetByMasterProjectID(ctx, projectID)
	if err != nil {
		if err == masterprojectstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "master project not found")
			return
		}
		h.Log.Error("load master project failed", zap.String("master_project_id", projectID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load master project")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	file, _, err := r.FormFile("csv")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file is required")
		return
	}
	defer file.Close()

	rows, rowErrs, err := csvutil.ParseLocationCSV(file)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file could not be parsed: "+err.Error())
		return
	}

	codes := make([]int64, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.UDISECode)
	}
	known, err := h.Schools.ByCodes(ctx, codes)
	if err != nil {
		h.Log.Error("school join failed", zap.String("master_project_id", projectID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not verify school codes")
		return
	}
	knownSet := make(map[int64]bool, len(known))
	for _, sc := range known {
		knownSet[sc.UDISECode] = true
	}

	var registered []int64
	var unknown []int64
	for _, c := range codes {
		if knownSet[c] {
			registered = append(registered, c)
		} else {
			unknown = append(unknown, c)
		}
	}

	resp := uploadResponse{
		MasterProjectID: projectID,
		UnknownCodes:    unknown,
		RowErrors:       rowErrs,
	}
	if len(registered) > 0 {
		loc, err := h.Locations.AddCodes(ctx, project, registered)
		if err != nil {
			h.Log.Error("register locations failed", zap.String("master_project_id", projectID), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not register locations")
			return
		}
		resp.TotalLocations = len(loc.DistinctCodes())
		resp.Registered = len(registered)
	} else {
		n, err := h.Locations.CountForProject(ctx, projectID)
		if err != nil {
			h.Log.Error("count locations failed", zap.String("master_project_id", projectID), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not count locations")
			return
		}
		resp.TotalLocations = int(n)
	}

	h.Log.Info("survey locations uploaded",
		zap.String("master_project_id", projectID),
		zap.Int("registered", resp.Registered),
		zap.Int("unknown", len(unknown)),
		zap.Int("row_errors", len(rowErrs)),
	)
	httpjson.Write(w, http.StatusOK, resp)
}

// Get handles GET /survey-locations/{masterProjectId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projectID := chi.URLParam(r, "masterProjectId")
	loc, err := h.Locations.GetByProject(ctx, projectID)
	if err != nil {
		if err == surveylocationstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "no locations registered for this project")
			return
		}
		h.Log.Error("get survey locations failed", zap.String("master_project_id", projectID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load survey locations")
		return
	}
	httpjson.Write(w, http.StatusOK, loc)
}

// Delete handles DELETE /survey-locations/{masterProjectId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projectID := chi.URLParam(r, "masterProjectId")
	n, err := h.Locations.Delete(ctx, projectID)
	if err != nil {
		h.Log.Error("delete survey locations failed", zap.String("master_project_id", projectID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete survey locations")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "no locations registered for this project")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

// internal/app/features/schools/handler.go
package schools

import (
	"context"
	"net/http"
	"strconv"

	schoolstore "github.com/dalemusser/surveytrack/internal/app/store/schools"
	"github.com/dalemusser/surveytrack/internal/app/system/csvutil"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the school reference-data endpoints.
type Handler struct {
	Schools *schoolstore.Store
	Log     *zap.Logger
}

func NewHandler(schools *schoolstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Schools: schools, Log: logger}
}

type uploadResponse struct {
	Inserted  int64              `json:"inserted"`
	RowErrors []csvutil.RowError `json:"rowErrors,omitempty"`
}

// Upload handles POST /schools/upload: a CSV of school reference rows
// as multipart field "csv". Rows whose UDISE code is already loaded are
// skipped.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	file, _, err := r.FormFile("csv")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file is required")
		return
	}
	defer file.Close()

	rows, rowErrs, err := csvutil.ParseSchoolCSV(file)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv file could not be parsed: "+err.Error())
		return
	}

	inserted, err := h.Schools.InsertMany(ctx, rows)
	if err != nil {
		h.Log.Error("school bulk load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load schools")
		return
	}
	h.Log.Info("schools uploaded", zap.Int64("inserted", inserted), zap.Int("row_errors", len(rowErrs)))
	httpjson.Write(w, http.StatusOK, uploadResponse{Inserted: inserted, RowErrors: rowErrs})
}

// Get handles GET /schools/{udise}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	udise, err := strconv.ParseInt(chi.URLParam(r, "udise"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "udise must be numeric")
		return
	}
	sc, err := h.Schools.GetByCode(ctx, udise)
	if err != nil {
		if err == schoolstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "school not found")
			return
		}
		h.Log.Error("get school failed", zap.Int64("udise", udise), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load school")
		return
	}
	httpjson.Write(w, http.StatusOK, sc)
}

// Delete handles DELETE /schools/{udise}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	udise, err := strconv.ParseInt(chi.URLParam(r, "udise"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "udise must be numeric")
		return
	}
	n, err := h.Schools.DeleteByCode(ctx, udise)
	if err != nil {
		h.Log.Error("delete school failed", zap.Int64("udise", udise), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete school")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "school not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int64{"deleted": n})
}

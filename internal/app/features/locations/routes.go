// internal/app/features/locations/routes.go
package locations

import (
	"github.com/dalemusser/surveytrack/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for survey-location endpoints, mounted
// under /survey-locations.
func Routes(h *Handler, uploads *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(uploads)).Post("/{masterProjectId}/upload", h.Upload)
	r.Get("/{masterProjectId}", h.Get)
	r.Delete("/{masterProjectId}", h.Delete)
	return r
}

// internal/app/features/schools/routes.go
package schools

import (
	"github.com/dalemusser/surveytrack/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for school reference-data endpoints,
// mounted under /schools.
func Routes(h *Handler, uploads *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(uploads)).Post("/upload", h.Upload)
	r.Get("/{udise}", h.Get)
	r.Delete("/{udise}", h.Delete)
	return r
}

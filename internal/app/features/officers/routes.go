// internal/app/features/officers/routes.go
package officers

import (
	"github.com/dalemusser/surveytrack/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for officer endpoints, mounted under
// /officers. The {role} segment is one of block, district, division,
// or SME.
func Routes(h *Handler, uploads *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(uploads)).Post("/{role}/{masterProjectId}/upload", h.Upload)
	r.Get("/{role}/{masterProjectId}", h.List)
	r.Get("/{role}/{masterProjectId}/coordinators", h.Coordinators)
	r.Get("/{role}/{masterProjectId}/schools", h.SchoolList)
	r.Get("/{role}/assigned-projects", h.AssignedProjects)
	r.Delete("/{role}/{masterProjectId}/{email}", h.Delete)
	return r
}

// internal/app/features/projects/routes.go
package projects

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for master-project endpoints, mounted
// under /master-projects.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{masterProjectId}", h.Get)
	r.Put("/{masterProjectId}", h.Update)
	r.Delete("/{masterProjectId}", h.Delete)
	return r
}

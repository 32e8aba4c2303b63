// internal/app/features/surveys/routes.go
package surveys

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for survey endpoints, mounted under
// /surveys.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{surveyId}", h.Get)
	r.Put("/{surveyId}", h.Update)
	r.Delete("/{surveyId}", h.Delete)
	return r
}

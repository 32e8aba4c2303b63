// internal/app/features/answers/routes.go
package answers

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for survey-answer endpoints, mounted under
// /survey-answers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

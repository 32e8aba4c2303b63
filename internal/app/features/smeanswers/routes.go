// internal/app/features/smeanswers/routes.go
package smeanswers

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for SME audit endpoints, mounted under
// /sme-survey-answers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for dashboard endpoints, mounted under
// /dashboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/count/{masterProjectId}/{surveyId}/{surveyFormId}", h.Count)
	return r
}

// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/surveytrack/internal/app/store/users"
	"github.com/dalemusser/surveytrack/internal/app/system/httpjson"
	"github.com/dalemusser/surveytrack/internal/app/system/normalize"
	"github.com/dalemusser/surveytrack/internal/app/system/paging"
	"github.com/dalemusser/surveytrack/internal/app/system/timeouts"
	"github.com/dalemusser/surveytrack/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Handler serves the user-directory endpoints. The directory is what
// officer uploads are checked against, so accounts are usually created
// here first.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// Create handles POST /users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var u models.User
	if err := httpjson.Decode(r, &u); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if u.Email == "" || u.Role == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and role are required")
		return
	}
	if role := normalize.Role(u.Role); role != "" {
		u.Role = string(role)
	}

	created, err := h.Users.Create(ctx, u)
	if err != nil {
		if err == userstore.ErrDuplicate {
			httpjson.Error(w, http.StatusConflict, "a user with this email and role already exists")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create user")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /users with optional role and email filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p := paging.Parse(r)
	filter := bson.M{}
	if role := normalize.Role(query.Get(r, "role")); role != "" {
		filter["role"] = string(role)
	}
	if email := normalize.Email(query.Get(r, "email")); email != "" {
		filter["email"] = email
	}

	results, err := h.Users.Find(ctx, filter, p.FindOptions())
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not list users")
		return
	}
	httpjson.Write(w, http.StatusOK, results)
}

// Me handles GET /users/by-email?email=…, the single-account lookup.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email := normalize.Email(query.Get(r, "email"))
	if email == "" {
		httpjson.Error(w, http.StatusBadRequest, "email is required")
		return
	}
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("get user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load user")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

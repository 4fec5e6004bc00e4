package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"user-directory-service/internal/model"
	"user-directory-service/internal/service"
)

// UserService перечисляет операции каталога пользователей, которые нужны HTTP-слою.
type UserService interface {
	CreateUser(ctx context.Context, in model.UserInput) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (model.User, bool, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, bool, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetActiveUsers(ctx context.Context) ([]model.User, error)
	SearchUsersByFirstName(ctx context.Context, fragment string) ([]model.User, error)
	FindUsersByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ActivateUser(ctx context.Context, id int64) (model.User, error)
	DeactivateUser(ctx context.Context, id int64) (model.User, error)
	GetUserCountByStatus(ctx context.Context, active bool) (int64, error)
}

type Handler struct {
	Users          UserService
	Log            *zap.Logger
	AllowedOrigins []string
}

func NewHandler(users UserService, log *zap.Logger, allowedOrigins []string) *Handler {
	return &Handler{
		Users:          users,
		Log:            log,
		AllowedOrigins: allowedOrigins,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.handleUserCreate)
		r.Get("/", h.handleUserList)
		r.Get("/active", h.handleUserListActive)
		r.Get("/search", h.handleUserSearch)
		r.Get("/count", h.handleUserCount)
		r.Get("/lookup", h.handleUserLookup)
		r.Get("/username/{username}", h.handleUserGetByUsername)
		r.Get("/email/{email}", h.handleUserGetByEmail)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleUserGet)
			r.Put("/", h.handleUserUpdate)
			r.Delete("/", h.handleUserDelete)
			r.Patch("/activate", h.handleUserActivate)
			r.Patch("/deactivate", h.handleUserDeactivate)
		})
	})

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, handlerName string, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		appErr = service.ErrInternal("internal error", err)
	}

	log := h.Log.With(
		zap.String("handler", handlerName),
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("code", appErr.Code),
		zap.String("message", appErr.Message),
		zap.Error(appErr.Err),
	)
	if appErr.Status >= http.StatusInternalServerError {
		log.Error("handler error")
	} else {
		log.Warn("handler error")
	}

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	h.writeJSON(w, appErr.Status, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

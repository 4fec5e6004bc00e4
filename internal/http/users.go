package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"user-directory-service/internal/model"
	"user-directory-service/internal/service"
)

func (h *Handler) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_create"

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateUserRequest(req); err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.toInput())
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *Handler) handleUserList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_list"

	users, err := h.Users.GetAllUsers(r.Context())
	h.writeUsers(w, r, handlerName, users, err)
}

func (h *Handler) handleUserListActive(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_list_active"

	users, err := h.Users.GetActiveUsers(r.Context())
	h.writeUsers(w, r, handlerName, users, err)
}

func (h *Handler) handleUserSearch(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_search"

	users, err := h.Users.SearchUsersByFirstName(r.Context(), r.URL.Query().Get("first_name"))
	h.writeUsers(w, r, handlerName, users, err)
}

func (h *Handler) handleUserLookup(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_lookup"

	q := r.URL.Query()
	users, err := h.Users.FindUsersByUsernameOrEmail(r.Context(), q.Get("username"), q.Get("email"))
	h.writeUsers(w, r, handlerName, users, err)
}

func (h *Handler) handleUserCount(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_count"

	active, err := ParseActiveQuery(r.URL.Query().Get("active"))
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	count, err := h.Users.GetUserCountByStatus(r.Context(), active)
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, countResponse{Active: active, Count: count})
}

func (h *Handler) handleUserGet(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_get"

	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, found, err := h.Users.GetUserByID(r.Context(), id)
	h.writeLookup(w, r, handlerName, user, found, err)
}

func (h *Handler) handleUserGetByUsername(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_get_by_username"

	username, err := pathParam(r, "username")
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, found, err := h.Users.GetUserByUsername(r.Context(), username)
	h.writeLookup(w, r, handlerName, user, found, err)
}

func (h *Handler) handleUserGetByEmail(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_get_by_email"

	email, err := pathParam(r, "email")
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, found, err := h.Users.GetUserByEmail(r.Context(), email)
	h.writeLookup(w, r, handlerName, user, found, err)
}

func (h *Handler) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_update"

	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateUserRequest(req); err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, err := h.Users.UpdateUser(r.Context(), id, req.toInput())
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_delete"

	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	if err := h.Users.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUserActivate(w http.ResponseWriter, r *http.Request) {
	h.handleSetActive(w, r, "user_activate", h.Users.ActivateUser)
}

func (h *Handler) handleUserDeactivate(w http.ResponseWriter, r *http.Request) {
	h.handleSetActive(w, r, "user_deactivate", h.Users.DeactivateUser)
}

func (h *Handler) handleSetActive(
	w http.ResponseWriter,
	r *http.Request,
	handlerName string,
	apply func(ctx context.Context, id int64) (model.User, error),
) {
	id, err := ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	user, err := apply(r.Context(), id)
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) writeUsers(w http.ResponseWriter, r *http.Request, handlerName string, users []model.User, err error) {
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	h.writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

// writeLookup отдаёт 404, если пользователь не найден.
func (h *Handler) writeLookup(w http.ResponseWriter, r *http.Request, handlerName string, user model.User, found bool, err error) {
	if err != nil {
		h.writeError(w, r, handlerName, err)
		return
	}
	if !found {
		h.writeError(w, r, handlerName, service.ErrNotFound("user not found"))
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse{User: user})
}

// pathParam возвращает декодированный сегмент пути.
// chi маршрутизирует по RawPath, только если он задан: лишь тогда параметр ещё экранирован.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(v)
		if err != nil {
			return "", service.ErrBadRequest(name + " is malformed")
		}
		v = unescaped
	}
	if v == "" {
		return "", service.ErrBadRequest(name + " is required")
	}
	return v, nil
}

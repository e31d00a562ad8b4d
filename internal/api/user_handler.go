package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tranqv/storefront-api/internal/api/shared"
	"github.com/tranqv/storefront-api/internal/service/user"
)

// UserHandler handles user administration API requests.
type UserHandler struct {
	userService *user.Service
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

func actorFrom(u shared.AuthenticatedUser) user.Actor {
	return user.Actor{ID: u.ID, Role: u.Role}
}

// List handles GET /api/users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	authUser, ok := authUserFromRequest(w, r)
	if !ok {
		return
	}

	users, err := h.userService.List(r.Context(), actorFrom(authUser))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"data": out})
}

// Get handles GET /api/users/{id}. Admins may read anyone, users only
// themselves.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	authUser, ok := authUserFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid user ID")
		return
	}

	u, err := h.userService.Get(r.Context(), actorFrom(authUser), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toUserResponse(u))
}

// Update handles PUT /api/users/{id}. Only admins may change roles.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	authUser, ok := authUserFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	u, err := h.userService.Update(r.Context(), actorFrom(authUser), id, user.UpdateInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to update user", "error", err, "user_id", id)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authUser, ok := authUserFromRequest(w, r)
	if !ok {
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(r.Context(), actorFrom(authUser), id); err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to delete user", "error", err, "user_id", id)
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "User removed"})
}

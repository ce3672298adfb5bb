package handlers

import (
	"net/http"

	"gamewatch-backend/application/services"
	"gamewatch-backend/pkg/common"
	apperrors "gamewatch-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler handles account registration, login and lookup.
type UserHandler struct {
	users  *services.UserService
	errs   *apperrors.ErrorHandler
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *services.UserService, errs *apperrors.ErrorHandler, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, errs: errs, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminKey string `json:"admin_key"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the public projection of an account returned by login
// and lookup responses.
type userPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Register handles POST /users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	userID, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("user registered", zap.String("userID", userID))
	common.RespondMessage(w, http.StatusCreated, "user registered", map[string]interface{}{
		"user_id": userID,
	})
}

// CreateAdmin handles POST /users/create-admin. The shared admin key in
// the request body must match the configured one.
func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	userID, err := h.users.CreateAdmin(r.Context(), req.Username, req.Email, req.Password, req.AdminKey)
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	h.logger.Info("admin user created", zap.String("userID", userID))
	common.RespondMessage(w, http.StatusCreated, "admin user created", map[string]interface{}{
		"user_id": userID,
	})
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// AdminLogin handles POST /users/admin/login; non-admin accounts are
// rejected with 403.
func (h *UserHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request, admin bool) {
	var req loginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errs.Handle(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}

	var result *services.LoginResult
	var err error
	if admin {
		result, err = h.users.AdminLogin(r.Context(), req.Email, req.Password)
	} else {
		result, err = h.users.Login(r.Context(), req.Email, req.Password)
	}
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "login successful", map[string]interface{}{
		"token": result.Token,
		"user": userPayload{
			UserID:   result.UserID,
			Username: result.Username,
			Email:    result.Email,
			IsAdmin:  result.IsAdmin,
		},
	})
}

// Get handles GET /users/{user_id}, returning the public fields only.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		h.errs.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, userPayload{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	})
}

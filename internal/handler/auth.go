package handler

import (
	"net/http"

	"github.com/templui/folio/internal/ctxkeys"
	"github.com/templui/folio/internal/service"
)

type AuthHandler struct {
	authService   *service.AuthService
	uploadService *service.UploadService
}

func NewAuthHandler(authService *service.AuthService, uploadService *service.UploadService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		uploadService: uploadService,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	result, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created(w, "registration successful", result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "login successful", result)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.authService.ChangePassword(r.Context(), ctxkeys.UserID(r.Context()), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "password updated", nil)
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

func (h *AuthHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req avatarRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.uploadService.SetAvatar(r.Context(), ctxkeys.UserID(r.Context()), req.Avatar)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok(w, "avatar updated", user)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Ianrury/articel/internal/session"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=User Admin"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	sess, redirect, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	if err := h.Sessions.Write(w, *sess); err != nil {
		writeError(w, "Could not issue session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, LoginResponse{Role: sess.Role, Redirect: redirect}, http.StatusOK)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, registerValidationMessage(req), http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, user, http.StatusCreated)
}

// registerValidationMessage picks the first field-level failure, mirroring
// the inline messages of the registration form.
func registerValidationMessage(req RegisterRequest) string {
	switch {
	case req.Username == "":
		return "Username is required"
	case len(req.Username) < 3:
		return "Username must be at least 3 characters"
	case len(req.Password) < 6:
		return "Password must be at least 6 characters"
	case req.ConfirmPassword == "":
		return "Password confirmation is required"
	case req.Password != req.ConfirmPassword:
		return "Passwords do not match"
	default:
		return "Role must be User or Admin"
	}
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.Profile(r.Context(), s.Token)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if s, err := h.Sessions.Read(r); err == nil {
		h.CategoryService.CloseView(s.Token)
	}

	h.Sessions.Clear(w)
	writeJSON(w, map[string]string{"redirect": session.LoginPath}, http.StatusOK)
}

// Navigate answers the route-gate decision for a path, so the front-end
// router asks one place instead of reading cookies itself.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	s, err := h.Sessions.Read(r)
	if err != nil {
		s = nil
	}

	writeJSON(w, session.Gate(path, s), http.StatusOK)
}

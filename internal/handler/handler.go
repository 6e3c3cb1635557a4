package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/service"
	"github.com/Ianrury/articel/internal/session"
)

type Handlers struct {
	ArticleService  *service.ArticleService
	CategoryService *service.CategoryService
	AuthService     *service.AuthService
	Sessions        *session.Codec
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(services *service.Service, sessions *session.Codec, cfg *config.Config) *Handlers {
	return &Handlers{
		ArticleService:  services.Article,
		CategoryService: services.Category,
		AuthService:     services.Auth,
		Sessions:        sessions,
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

// requireSession reads the verified session or answers 401.
func (h *Handlers) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.Sessions.Read(r)
	if err != nil {
		writeError(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return s, true
}

// requireAdmin additionally checks the role claim.
func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.requireSession(w, r)
	if !ok {
		return nil, false
	}
	if s.Role != session.RoleAdmin {
		writeError(w, "Access denied", http.StatusForbidden)
		return nil, false
	}
	return s, true
}

// optionalToken returns the session token when one exists; reader endpoints
// work signed out too.
func (h *Handlers) optionalToken(r *http.Request) string {
	s, err := h.Sessions.Read(r)
	if err != nil {
		return ""
	}
	return s.Token
}

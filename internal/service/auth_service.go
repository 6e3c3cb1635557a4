package service

import (
	"context"
	"fmt"

	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
	"github.com/Ianrury/articel/internal/session"
)

// AuthService exchanges credentials for a session and reads the profile of
// the signed-in user.
type AuthService struct {
	api AuthAPI
}

func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login authenticates against the API and returns the session to issue plus
// the landing path for the user's role.
func (s *AuthService) Login(ctx context.Context, username, password string) (*session.Session, string, error) {
	resp, err := s.api.Login(ctx, remote.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, "", fmt.Errorf("logging in: %w", err)
	}

	sess := &session.Session{Token: resp.Token, Role: resp.Role}
	return sess, session.LandingPath(resp.Role), nil
}

// Register creates the account. The caller signs in separately; the API
// does not issue a token on registration.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	user, err := s.api.Register(ctx, remote.RegisterRequest{Username: username, Password: password, Role: role})
	if err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, token string) (*models.User, error) {
	user, err := s.api.Profile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return user, nil
}

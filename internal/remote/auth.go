package remote

import (
	"context"
	"net/http"

	"github.com/Ianrury/articel/internal/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Kind: KindBadResponse, Message: "login response carried no token"}
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

package client

import (
	"context"
	"net/http"

	"github.com/erazemk/artverse/internal/model"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User model.User `json:"user"`
}

// Me returns the signed-in user. Without a session the error wraps
// ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &resp, ""); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login starts a session. The session cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp userResponse
	in := credentials{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", in, &resp, ""); err != nil {
		return nil, err
	}
	c.log.Info("signed in", "user_id", resp.User.ID)
	return &resp.User, nil
}

// Signup creates an account and starts a session for it.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	var resp userResponse
	in := credentials{Name: name, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/signup", in, &resp, ""); err != nil {
		return nil, err
	}
	c.log.Info("account created", "user_id", resp.User.ID)
	return &resp.User, nil
}

// Logout ends the session and drops the local session cookies.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodGet, "/logout", nil, nil, ""); err != nil {
		return err
	}
	var expired []*http.Cookie
	for _, ck := range c.Cookies() {
		expired = append(expired, &http.Cookie{Name: ck.Name, Value: "", Path: "/", MaxAge: -1})
	}
	c.SetCookies(expired)
	return nil
}

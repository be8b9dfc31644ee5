package taskclient

import (
	"context"
	"net/http"
)

// User is the account a session belongs to.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session holds the bearer token for an authenticated user. A zero Token
// means logged out.
type Session struct {
	Token string
	User  User
}

// Active reports whether the session can be used for task calls.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

type authResponse struct {
	User
	Token string `json:"token"`
}

func (r authResponse) session() *Session {
	return &Session{Token: r.Token, User: r.User}
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// Login opens a new session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

// Logout ends the session on the server and clears it locally. The local
// state is cleared even if the server call fails.
func (c *Client) Logout(ctx context.Context, session *Session) error {
	if !session.Active() {
		return ErrNoSession
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", session, nil, nil)
	*session = Session{}
	return err
}

package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// User is an account of the hosted auth service.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitzero"`
	LastSignInAt     *time.Time `json:"last_sign_in_at,omitempty"`
}

// Confirmed reports whether the user's email address has been confirmed.
func (u *User) Confirmed() bool {
	return u != nil && (u.EmailConfirmedAt != nil || u.ConfirmedAt != nil)
}

// Session is an access/refresh token pair issued by the auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// Expired reports whether the access token expires within leeway of now.
func (s *Session) Expired(now time.Time, leeway time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return !now.Add(leeway).Before(time.Unix(s.ExpiresAt, 0))
}

// SignUpResult holds the outcome of a signup. Session is nil when the
// project requires email confirmation.
type SignUpResult struct {
	User    *User
	Session *Session
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return c.token(ctx, "password", credentials{Email: email, Password: password})
}

// RefreshSession exchanges a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	return c.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (c *Client) token(ctx context.Context, grantType string, body any) (*Session, error) {
	status, data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/token",
		query:  url.Values{"grant_type": {grantType}},
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, decodeAuthError(status, data)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	s.fillExpiry(time.Now())
	return &s, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*SignUpResult, error) {
	status, data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/signup",
		body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, decodeAuthError(status, data)
	}

	// With autoconfirm the response is a session; otherwise it is the user.
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse signup response: %w", err)
	}
	if s.AccessToken != "" {
		s.fillExpiry(time.Now())
		return &SignUpResult{User: s.User, Session: &s}, nil
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse signup response: %w", err)
	}
	return &SignUpResult{User: &u}, nil
}

// Recover sends a password recovery email. redirectTo is where the link in
// the email lands; empty uses the project default.
func (c *Client) Recover(ctx context.Context, email, redirectTo string) error {
	var query url.Values
	if redirectTo != "" {
		query = url.Values{"redirect_to": {redirectTo}}
	}
	status, data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/recover",
		query:  query,
		body:   map[string]string{"email": email},
	})
	if err != nil {
		return err
	}
	if !success(status) {
		return decodeAuthError(status, data)
	}
	return nil
}

// GetUser returns the user owning accessToken.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	status, data, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   authPath + "/user",
		token:  accessToken,
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, decodeAuthError(status, data)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &u, nil
}

// UpdatePassword sets a new password for the user owning accessToken.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) (*User, error) {
	status, data, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   authPath + "/user",
		token:  accessToken,
		body:   map[string]string{"password": password},
	})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, decodeAuthError(status, data)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return &u, nil
}

// Logout revokes the session owning accessToken.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	status, data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/logout",
		token:  accessToken,
	})
	if err != nil {
		return err
	}
	if !success(status) {
		return decodeAuthError(status, data)
	}
	return nil
}

func (s *Session) fillExpiry(now time.Time) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second).Unix()
	}
}

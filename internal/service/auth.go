package service

import (
	"context"
	"errors"

	"github.com/xolan/daylog/internal/session"
	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/supabase"
)

// ErrNoAccounts is returned by account operations on backends without
// accounts.
var ErrNoAccounts = errors.New("accounts are only available with the supabase backend")

// AuthService provides account operations through the session gateway.
// Without a gateway every operation fails with ErrNoAccounts.
type AuthService struct {
	gateway *session.Gateway
	backend string
	local   StaticIdentity
}

// NewAuthService creates an AuthService over gateway. local identifies
// the owner when gateway is nil.
func NewAuthService(gateway *session.Gateway, backend string, local StaticIdentity) *AuthService {
	return &AuthService{gateway: gateway, backend: backend, local: local}
}

// Available reports whether accounts are supported.
func (s *AuthService) Available() bool {
	return s.gateway != nil
}

// Gateway returns the session gateway, nil without accounts.
func (s *AuthService) Gateway() *session.Gateway {
	return s.gateway
}

// Message returns the feedback of the last account operation.
func (s *AuthService) Message() session.Message {
	if s.gateway == nil {
		return session.Message{}
	}
	return s.gateway.Message()
}

// UserID returns the signed-in user's id, or the local owner without
// accounts.
func (s *AuthService) UserID(ctx context.Context) (string, error) {
	if s.gateway == nil {
		return s.local.UserID(ctx)
	}
	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", shared.ErrNotAuthenticated
	}
	return user.ID, nil
}

// Start resolves the initial screen, entering password recovery when
// fragment carries recovery tokens.
func (s *AuthService) Start(ctx context.Context, fragment string) (session.Redirect, error) {
	if s.gateway == nil {
		return session.Redirect{To: session.ScreenApp}, nil
	}
	return s.gateway.Start(ctx, fragment)
}

// SignIn signs in with email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (session.Redirect, error) {
	if s.gateway == nil {
		return session.Redirect{}, ErrNoAccounts
	}
	return s.gateway.SignIn(ctx, email, password)
}

// SignUp registers a new account.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) (session.SignupOutcome, session.Redirect, error) {
	if s.gateway == nil {
		return session.SignupConfirmationPending, session.Redirect{}, ErrNoAccounts
	}
	return s.gateway.SignUp(ctx, email, password, confirm)
}

// RequestPasswordReset sends a password recovery email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.gateway == nil {
		return ErrNoAccounts
	}
	return s.gateway.RequestPasswordReset(ctx, email)
}

// ChangePassword completes a password recovery. recoveryURL is the link
// from the recovery email, or just its fragment; it may be empty when a
// recovery is already active.
func (s *AuthService) ChangePassword(ctx context.Context, recoveryURL, password, confirm string) (session.Redirect, error) {
	if s.gateway == nil {
		return session.Redirect{}, ErrNoAccounts
	}
	if recoveryURL != "" {
		if _, err := s.gateway.Start(ctx, recoveryURL); err != nil {
			return session.Redirect{}, err
		}
	}
	return s.gateway.CompletePasswordChange(ctx, password, confirm)
}

// SignOut signs the current user out.
func (s *AuthService) SignOut(ctx context.Context) error {
	if s.gateway == nil {
		return ErrNoAccounts
	}
	return s.gateway.SignOut(ctx)
}

// Whoami describes the journal owner.
func (s *AuthService) Whoami(ctx context.Context) (*Account, error) {
	if s.gateway == nil {
		return &Account{Backend: s.backend, UserID: string(s.local), Confirmed: true}, nil
	}
	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return accountFor(s.backend, user), nil
}

func accountFor(backend string, u *supabase.User) *Account {
	return &Account{Backend: backend, UserID: u.ID, Email: u.Email, Confirmed: u.Confirmed()}
}

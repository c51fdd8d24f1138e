// Package session gates access to the journal behind the hosted auth
// service. It drives the login, signup, reset-request and password-change
// screens and keeps the signed-in session cached between runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/supabase"
)

// DefaultRedirectDelay is the pause between a success message and the
// redirect to the app.
const DefaultRedirectDelay = time.Second

// expiryLeeway refreshes tokens slightly before they expire.
const expiryLeeway = 30 * time.Second

// Screen is one of the session screens, or the app itself.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenSignup
	ScreenResetRequest
	ScreenPasswordChange
	ScreenApp
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenResetRequest:
		return "reset-request"
	case ScreenPasswordChange:
		return "password-change"
	case ScreenApp:
		return "app"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Redirect tells the caller where to go next and how long to wait first.
type Redirect struct {
	To    Screen
	After time.Duration
}

// MessageKind classifies the message shown on a session screen.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageError
	MessageSuccess
)

// Message is the transient feedback line of a session screen.
type Message struct {
	Kind MessageKind
	Text string
}

// SignupOutcome distinguishes accounts awaiting email confirmation from
// accounts that can be used right away.
type SignupOutcome int

const (
	SignupConfirmationPending SignupOutcome = iota
	SignupReady
)

// AuthClient is the subset of the hosted auth API used by the gateway.
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error)
	SignUp(ctx context.Context, email, password string) (*supabase.SignUpResult, error)
	Recover(ctx context.Context, email, redirectTo string) error
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	UpdatePassword(ctx context.Context, accessToken, password string) (*supabase.User, error)
	Logout(ctx context.Context, accessToken string) error
}

// Gateway is the session state machine.
type Gateway struct {
	auth   AuthClient
	cache  Cache
	logger *zap.Logger
	now    func() time.Time

	redirectDelay time.Duration
	recoveryURL   string

	mu           sync.Mutex
	screen       Screen
	message      Message
	session      *supabase.Session
	recovery     *RecoveryState
	listeners    []subscription
	nextListener int
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithRedirectDelay overrides DefaultRedirectDelay.
func WithRedirectDelay(d time.Duration) Option {
	return func(g *Gateway) { g.redirectDelay = d }
}

// WithRecoveryURL sets where password-reset emails link to.
func WithRecoveryURL(u string) Option {
	return func(g *Gateway) { g.recoveryURL = u }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway returns a gateway on the login screen.
func NewGateway(auth AuthClient, cache Cache, opts ...Option) *Gateway {
	g := &Gateway{
		auth:          auth,
		cache:         cache,
		logger:        zap.NewNop(),
		now:           time.Now,
		redirectDelay: DefaultRedirectDelay,
		screen:        ScreenLogin,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Screen returns the current screen.
func (g *Gateway) Screen() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen
}

// Message returns the current feedback message.
func (g *Gateway) Message() Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// InRecovery reports whether a recovery session is active.
func (g *Gateway) InRecovery() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recovery != nil
}

func (g *Gateway) ShowLogin()        { g.navigate(ScreenLogin) }
func (g *Gateway) ShowSignup()       { g.navigate(ScreenSignup) }
func (g *Gateway) ShowResetRequest() { g.navigate(ScreenResetRequest) }

// navigate moves between the freely reachable screens. Leaving the
// password-change screen abandons the recovery session.
func (g *Gateway) navigate(to Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recovery = nil
	g.screen = to
	g.message = Message{}
}

// Start decides the initial screen. A fragment carrying a recovery marker
// or an access token enters the password-change screen. Otherwise an
// existing session goes to the app and anything else to login.
func (g *Gateway) Start(ctx context.Context, fragment string) (Redirect, error) {
	g.setMessage(Message{})

	if rec, ok := ParseFragment(fragment); ok {
		if rec.Err != nil {
			g.navigate(ScreenLogin)
			g.fail(rec.Err)
			return Redirect{To: ScreenLogin}, rec.Err
		}
		g.enterRecovery(rec)
		return Redirect{To: ScreenPasswordChange}, nil
	}

	user, err := g.CurrentUser(ctx)
	if err != nil {
		g.navigate(ScreenLogin)
		g.fail(err)
		return Redirect{To: ScreenLogin}, err
	}
	if user == nil {
		g.navigate(ScreenLogin)
		return Redirect{To: ScreenLogin}, nil
	}
	return Redirect{To: ScreenApp}, nil
}

// HandleEvent feeds an auth state change observed outside the gateway.
// A PasswordRecovery event enters the password-change screen.
func (g *Gateway) HandleEvent(ev Event, s *supabase.Session) {
	if ev == EventPasswordRecovery && s != nil {
		rec := &RecoveryState{
			Type:         "recovery",
			AccessToken:  s.AccessToken,
			RefreshToken: s.RefreshToken,
			TokenType:    s.TokenType,
			ExpiresIn:    s.ExpiresIn,
			ExpiresAt:    s.ExpiresAt,
		}
		if s.User != nil {
			rec.Subject = s.User.ID
			rec.Email = s.User.Email
		}
		g.enterRecovery(rec)
		return
	}
	g.publish(ev, s)
}

func (g *Gateway) enterRecovery(rec *RecoveryState) {
	g.mu.Lock()
	g.recovery = rec
	g.screen = ScreenPasswordChange
	g.message = Message{}
	g.mu.Unlock()

	g.logger.Info("entered password recovery", zap.String("email", rec.Email))
	g.publish(EventPasswordRecovery, rec.Session())
}

// CurrentUser returns the signed-in user, refreshing an expired session.
// It returns nil without error when nobody is signed in.
func (g *Gateway) CurrentUser(ctx context.Context) (*supabase.User, error) {
	s, err := g.activeSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	return s.User, nil
}

// AccessToken returns a valid access token of the signed-in user.
func (g *Gateway) AccessToken(ctx context.Context) (string, error) {
	s, err := g.activeSession(ctx)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", shared.ErrNotAuthenticated
	}
	return s.AccessToken, nil
}

func (g *Gateway) activeSession(ctx context.Context) (*supabase.Session, error) {
	g.mu.Lock()
	s := g.session
	g.mu.Unlock()

	if s == nil {
		cached, err := g.cache.Load()
		if err != nil {
			g.logger.Warn("discarding unreadable session cache", zap.Error(err))
			_ = g.cache.Clear()
			return nil, nil
		}
		if cached == nil {
			return nil, nil
		}
		s = cached
	}

	if s.Expired(g.now(), expiryLeeway) {
		if s.RefreshToken == "" {
			g.dropSession()
			return nil, nil
		}
		fresh, err := g.auth.RefreshSession(ctx, s.RefreshToken)
		if err != nil {
			if shared.IsAuth(err) {
				g.logger.Info("session refresh rejected, signing out", zap.Error(err))
				g.dropSession()
				g.publish(EventSignedOut, nil)
				return nil, nil
			}
			return nil, fmt.Errorf("refresh session: %w", err)
		}
		if fresh.User == nil {
			fresh.User = s.User
		}
		g.storeSession(fresh)
		g.publish(EventTokenRefreshed, fresh)
		s = fresh
	}

	if s.User == nil {
		user, err := g.auth.GetUser(ctx, s.AccessToken)
		if err != nil {
			if shared.IsAuth(err) {
				g.dropSession()
				return nil, nil
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
		s.User = user
		g.storeSession(s)
		return s, nil
	}

	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
	return s, nil
}

// SignIn authenticates with email and password.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (Redirect, error) {
	g.setMessage(Message{})
	if err := validateLogin(email, password); err != nil {
		g.fail(err)
		return Redirect{}, err
	}

	s, err := g.auth.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		g.fail(err)
		return Redirect{}, err
	}

	g.storeSession(s)
	g.succeed("Login successful! Redirecting...")
	g.publish(EventSignedIn, s)
	return Redirect{To: ScreenApp, After: g.redirectDelay}, nil
}

// SignUp registers an account. A project without email confirmation
// returns a session right away and redirects to the app; a confirmed user
// without a session is sent to login.
func (g *Gateway) SignUp(ctx context.Context, email, password, confirm string) (SignupOutcome, Redirect, error) {
	g.setMessage(Message{})
	if err := validateSignup(email, password, confirm); err != nil {
		g.fail(err)
		return SignupConfirmationPending, Redirect{}, err
	}

	res, err := g.auth.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		g.fail(err)
		return SignupConfirmationPending, Redirect{}, err
	}

	switch {
	case res.Session != nil:
		g.storeSession(res.Session)
		g.succeed("Account created successfully! Redirecting...")
		g.publish(EventSignedIn, res.Session)
		return SignupReady, Redirect{To: ScreenApp, After: g.redirectDelay}, nil
	case res.User.Confirmed():
		g.navigate(ScreenLogin)
		g.succeed("Account created successfully! You can now login.")
		return SignupReady, Redirect{To: ScreenLogin}, nil
	default:
		g.succeed("Account created! Please check your email to confirm your account.")
		return SignupConfirmationPending, Redirect{To: ScreenSignup}, nil
	}
}

// RequestPasswordReset sends a recovery email.
func (g *Gateway) RequestPasswordReset(ctx context.Context, email string) error {
	g.setMessage(Message{})
	if err := validateReset(email); err != nil {
		g.fail(err)
		return err
	}
	if err := g.auth.Recover(ctx, strings.TrimSpace(email), g.recoveryURL); err != nil {
		g.fail(err)
		return err
	}
	g.succeed("Password reset email sent! Check your inbox.")
	return nil
}

// CompletePasswordChange sets a new password using the active recovery
// session, which then becomes the signed-in session.
func (g *Gateway) CompletePasswordChange(ctx context.Context, password, confirm string) (Redirect, error) {
	g.mu.Lock()
	rec := g.recovery
	g.message = Message{}
	g.mu.Unlock()

	if rec == nil {
		g.fail(shared.ErrNoRecoverySession)
		return Redirect{}, shared.ErrNoRecoverySession
	}
	if err := validatePassword(password, confirm); err != nil {
		g.fail(err)
		return Redirect{}, err
	}

	user, err := g.auth.UpdatePassword(ctx, rec.AccessToken, password)
	if err != nil {
		g.fail(err)
		return Redirect{}, err
	}

	s := rec.Session()
	s.User = user
	g.mu.Lock()
	g.recovery = nil
	g.mu.Unlock()
	g.storeSession(s)
	g.succeed("Password updated successfully! Redirecting...")
	g.publish(EventUserUpdated, s)
	return Redirect{To: ScreenApp, After: g.redirectDelay}, nil
}

// SignOut revokes the session remotely, best effort, and forgets it
// locally.
func (g *Gateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	s := g.session
	g.mu.Unlock()
	if s == nil {
		s, _ = g.cache.Load()
	}

	if s != nil {
		if err := g.auth.Logout(ctx, s.AccessToken); err != nil {
			g.logger.Warn("remote sign out failed", zap.Error(err))
		}
	}

	err := g.dropSession()
	g.navigate(ScreenLogin)
	g.succeed("Logged out successfully!")
	g.publish(EventSignedOut, nil)
	return err
}

func (g *Gateway) storeSession(s *supabase.Session) {
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
	if err := g.cache.Save(s); err != nil {
		g.logger.Warn("failed to cache session", zap.Error(err))
	}
}

func (g *Gateway) dropSession() error {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
	if err := g.cache.Clear(); err != nil {
		return fmt.Errorf("clear session cache: %w", err)
	}
	return nil
}

func (g *Gateway) setMessage(m Message) {
	g.mu.Lock()
	g.message = m
	g.mu.Unlock()
}

func (g *Gateway) fail(err error) {
	text := err.Error()
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		text = ve.Message
	}
	g.setMessage(Message{Kind: MessageError, Text: text})
}

func (g *Gateway) succeed(text string) {
	g.setMessage(Message{Kind: MessageSuccess, Text: text})
}

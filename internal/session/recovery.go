package session

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/supabase"
)

// RecoveryState is the auth state carried in the fragment of a
// password-reset link.
type RecoveryState struct {
	Type         string
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	ExpiresAt    int64

	// Subject, Email and Expiry are read from the access token without
	// verifying it; the auth service verifies the token when it is used.
	Subject string
	Email   string
	Expiry  time.Time

	// Err is set when the link itself reports a failure, for example an
	// expired one-time token.
	Err error
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseFragment extracts recovery state from a URL, a fragment with or
// without its leading '#', or a bare query string. It reports false when
// the input carries neither a recovery marker, an access token nor an
// error.
func ParseFragment(raw string) (*RecoveryState, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[i+1:]
	} else if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, false
	}

	if desc := values.Get("error_description"); desc != "" || values.Get("error") != "" {
		if desc == "" {
			desc = values.Get("error")
		}
		return &RecoveryState{Err: &shared.AuthError{
			Status:  401,
			Code:    firstNonEmpty(values.Get("error_code"), values.Get("error")),
			Message: desc,
		}}, true
	}

	rs := &RecoveryState{
		Type:         values.Get("type"),
		AccessToken:  values.Get("access_token"),
		RefreshToken: values.Get("refresh_token"),
		TokenType:    values.Get("token_type"),
	}
	if rs.Type != "recovery" && rs.AccessToken == "" {
		return nil, false
	}
	rs.ExpiresIn, _ = strconv.Atoi(values.Get("expires_in"))
	rs.ExpiresAt, _ = strconv.ParseInt(values.Get("expires_at"), 10, 64)

	if rs.AccessToken != "" {
		var claims tokenClaims
		if _, _, err := jwt.NewParser().ParseUnverified(rs.AccessToken, &claims); err == nil {
			rs.Subject = claims.Subject
			rs.Email = claims.Email
			if claims.ExpiresAt != nil {
				rs.Expiry = claims.ExpiresAt.Time
				if rs.ExpiresAt == 0 {
					rs.ExpiresAt = claims.ExpiresAt.Unix()
				}
			}
		}
	}
	return rs, true
}

// Session converts the recovery state into a session usable for the
// password update call.
func (r *RecoveryState) Session() *supabase.Session {
	s := &supabase.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		ExpiresIn:    r.ExpiresIn,
		ExpiresAt:    r.ExpiresAt,
	}
	if r.Subject != "" || r.Email != "" {
		s.User = &supabase.User{ID: r.Subject, Email: r.Email}
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

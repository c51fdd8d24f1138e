package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/xolan/daylog/internal/shared"
)

// authErrorBody covers the error shapes returned by GoTrue versions:
// {"error","error_description"}, {"code","msg"} and {"error_code","message"}.
type authErrorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
	Code             any    `json:"code"`
}

// decodeAuthError converts an auth API error response to an AuthError.
func decodeAuthError(status int, body []byte) *shared.AuthError {
	var b authErrorBody
	_ = json.Unmarshal(body, &b)

	ae := &shared.AuthError{Status: status}
	switch {
	case b.ErrorDescription != "":
		ae.Message = b.ErrorDescription
	case b.Msg != "":
		ae.Message = b.Msg
	case b.Message != "":
		ae.Message = b.Message
	case b.Error != "":
		ae.Message = b.Error
	default:
		ae.Message = http.StatusText(status)
	}

	switch {
	case b.ErrorCode != "":
		ae.Code = b.ErrorCode
	case b.Error != "" && b.ErrorDescription != "":
		ae.Code = b.Error
	default:
		if s, ok := b.Code.(string); ok {
			ae.Code = s
		}
	}
	return ae
}

// APIError is an error reported by the data API.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	var parts []string
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, msg)
	return fmt.Sprintf("data api (%d): %s", e.Status, strings.Join(parts, ": "))
}

func decodeAPIError(status int, body []byte) *APIError {
	e := &APIError{}
	_ = json.Unmarshal(body, e)
	e.Status = status
	return e
}

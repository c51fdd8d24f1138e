package session

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xolan/daylog/internal/shared"
)

// MinPasswordLength is the shortest password accepted on signup and
// password change.
const MinPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Confirm is declared before Password so a mismatch is reported before a
// short password.
type signupForm struct {
	Email    string `validate:"required,email"`
	Confirm  string `validate:"eqfield=Password"`
	Password string `validate:"required,min=6"`
}

type resetForm struct {
	Email string `validate:"required,email"`
}

type passwordForm struct {
	Confirm  string `validate:"eqfield=Password"`
	Password string `validate:"required,min=6"`
}

func validateLogin(email, password string) error {
	return check(loginForm{Email: strings.TrimSpace(email), Password: password})
}

func validateSignup(email, password, confirm string) error {
	return check(signupForm{Email: strings.TrimSpace(email), Password: password, Confirm: confirm})
}

func validateReset(email string) error {
	return check(resetForm{Email: strings.TrimSpace(email)})
}

func validatePassword(password, confirm string) error {
	return check(passwordForm{Password: password, Confirm: confirm})
}

// check runs the struct validator and reports the first failure as a
// ValidationError carrying a user-facing message.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "eqfield":
		return &shared.ValidationError{Message: "Passwords do not match"}
	case "min":
		return &shared.ValidationError{Field: field, Message: "Password must be at least 6 characters"}
	case "email":
		return &shared.ValidationError{Field: field, Message: "Please enter a valid email address"}
	case "required":
		if field == "email" {
			return &shared.ValidationError{Field: field, Message: "Email is required"}
		}
		return &shared.ValidationError{Field: field, Message: "Password is required"}
	}
	return shared.NewValidationError(field, "failed %s check", fe.Tag())
}

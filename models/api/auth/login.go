package authapimodels

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email has invalid format")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"` // account email, the reset code is sent there
}

func (r ForgotPasswordRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email has invalid format")
	}
	return nil
}

type ResetPasswordRequest struct {
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.ResetCode) == "" {
		return errors.New("reset code is required")
	}
	if r.NewPassword == "" {
		return errors.New("new password is required")
	}
	return nil
}

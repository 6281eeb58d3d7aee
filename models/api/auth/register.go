package authapimodels

import (
	"attachment-portal-backend/models"
	"net/mail"
	"strings"

	"github.com/pkg/errors"
)

// RegisterRequest is an applicant self-registration.
type RegisterRequest struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        models.UserRole `json:"role"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Institution string          `json:"institution"`
	Course      string          `json:"course"`
	YearOfStudy int             `json:"yearOfStudy"`
}

func (r RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email has invalid format")
	}
	if !r.Role.IsApplicant() {
		return errors.Errorf("role must be one of %v, %v", models.InternRole, models.AttacheeRole)
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return errors.New("first and last name are required")
	}
	return nil
}

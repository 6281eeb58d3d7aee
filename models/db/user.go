package dbmodels

import (
	"attachment-portal-backend/models"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// NoSubdepartment marks accounts and applications bound to a department without subdepartments.
const NoSubdepartment = "NONE"

type User struct {
	BaseModel
	Email          string          `gorm:"type:varchar(255);uniqueIndex"`
	Password       string          `gorm:"type:varchar(128)"`
	Role           models.UserRole `gorm:"type:varchar(50);index"`
	Department     string          `gorm:"type:varchar(50);index:idx_user_scope"`
	Subdepartment  string          `gorm:"type:varchar(50);index:idx_user_scope"`
	FirstName      string          `gorm:"type:varchar(150)"`
	LastName       string          `gorm:"type:varchar(150)"`
	PhoneNumber    string          `gorm:"type:varchar(20)"`
	Institution    string          `gorm:"type:varchar(255)"`
	Course         string          `gorm:"type:varchar(255)"`
	YearOfStudy    int
	IsActive       bool
	LastLogin      *time.Time
	ResetCode      string `gorm:"type:varchar(64);index"`
	ResetCodeUntil *time.Time
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

func (r User) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("unknown role: %v", r.Role)
	}
	if r.FirstName == "" || r.LastName == "" {
		return errors.New("first and last name are required")
	}
	if r.Role.IsApplicant() {
		if r.Institution == "" {
			return errors.New("institution is required")
		}
		if r.Course == "" {
			return errors.New("course is required")
		}
		if r.YearOfStudy <= 0 {
			return errors.New("year of study is required")
		}
	}
	return nil
}

// UserFilter is the store level filter of the user directory.
type UserFilter struct {
	Roles  []models.UserRole
	Search string
	Page   int
	Limit  int
}

package userapimodels

import (
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type UserView struct {
	ID                string          `json:"id"`
	Email             string          `json:"email"`
	Role              models.UserRole `json:"role"`
	RoleName          string          `json:"roleName"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	FullName          string          `json:"fullName"`
	PhoneNumber       string          `json:"phoneNumber"`
	Department        string          `json:"department,omitempty"`
	DepartmentName    string          `json:"departmentName,omitempty"`
	Subdepartment     string          `json:"subdepartment,omitempty"`
	SubdepartmentName string          `json:"subdepartmentName,omitempty"`
	Institution       string          `json:"institution,omitempty"`
	Course            string          `json:"course,omitempty"`
	YearOfStudy       int             `json:"yearOfStudy,omitempty"`
	IsActive          bool            `json:"isActive"`
	LastLogin         *time.Time      `json:"lastLogin"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:            rec.ID,
		Email:         rec.Email,
		Role:          rec.Role,
		RoleName:      rec.Role.ToHuman(),
		FirstName:     rec.FirstName,
		LastName:      rec.LastName,
		FullName:      rec.GetFullName(),
		PhoneNumber:   rec.PhoneNumber,
		Department:    rec.Department,
		Subdepartment: rec.Subdepartment,
		Institution:   rec.Institution,
		Course:        rec.Course,
		YearOfStudy:   rec.YearOfStudy,
		IsActive:      rec.IsActive,
		LastLogin:     rec.LastLogin,
		CreatedAt:     rec.CreatedAt,
	}
}

type DirectoryKind string

const (
	DirectoryStaff      DirectoryKind = "staff"
	DirectoryApplicants DirectoryKind = "applicants"
)

type ListFilter struct {
	Kind   DirectoryKind `query:"kind"`
	Search string        `query:"search"`
	Page   int           `query:"page"`
	Limit  int           `query:"limit"`
}

func (f ListFilter) ToStoreFilter() (dbmodels.UserFilter, error) {
	filter := dbmodels.UserFilter{
		Search: strings.TrimSpace(f.Search),
		Page:   f.Page,
		Limit:  f.Limit,
	}
	switch f.Kind {
	case "":
	case DirectoryStaff:
		for _, role := range models.AllRoles {
			if role.IsStaff() {
				filter.Roles = append(filter.Roles, role)
			}
		}
	case DirectoryApplicants:
		filter.Roles = []models.UserRole{models.InternRole, models.AttacheeRole}
	default:
		return dbmodels.UserFilter{}, errors.Errorf("kind must be one of %v, %v", DirectoryStaff, DirectoryApplicants)
	}
	return filter, nil
}

// CreateUser provisions an account, staff accounts are created by an admin only.
type CreateUser struct {
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Role          models.UserRole `json:"role"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	PhoneNumber   string          `json:"phoneNumber"`
	Department    string          `json:"department"`
	Subdepartment string          `json:"subdepartment"`
}

func (r *CreateUser) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Department = strings.ToUpper(strings.TrimSpace(r.Department))
	r.Subdepartment = strings.ToUpper(strings.TrimSpace(r.Subdepartment))
}

func (r CreateUser) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email has invalid format")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("unknown role: %v", r.Role)
	}
	if r.Role.IsApplicant() {
		return errors.New("applicant accounts are created by registration")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return errors.New("first and last name are required")
	}
	return nil
}

// UpdateUser is an admin edit, empty fields keep their values.
type UpdateUser struct {
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	PhoneNumber   string          `json:"phoneNumber"`
	Role          models.UserRole `json:"role"`
	Department    string          `json:"department"`
	Subdepartment string          `json:"subdepartment"`
}

type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type ProfileUpdate struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Institution string `json:"institution"`
	Course      string `json:"course"`
	YearOfStudy int    `json:"yearOfStudy"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return errors.New("current and new password are required")
	}
	return nil
}

package models

import "github.com/pkg/errors"

type UserRole string

const (
	InternRole             UserRole = "intern"
	AttacheeRole           UserRole = "attachee"
	HRRole                 UserRole = "hr"
	HODRole                UserRole = "hod"
	AdminRole              UserRole = "admin"
	ChiefOfStaffRole       UserRole = "chief_of_staff"
	PrincipalSecretaryRole UserRole = "principal_secretary"
)

var AllRoles = []UserRole{
	InternRole,
	AttacheeRole,
	HRRole,
	HODRole,
	AdminRole,
	ChiefOfStaffRole,
	PrincipalSecretaryRole,
}

var roleHumanName = map[UserRole]string{
	InternRole:             "Intern",
	AttacheeRole:           "Attachee",
	HRRole:                 "Human Resource",
	HODRole:                "Head of Department",
	AdminRole:              "Administrator",
	ChiefOfStaffRole:       "Chief of Staff",
	PrincipalSecretaryRole: "Principal Secretary",
}

func ParseUserRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.IsValid() {
		return "", errors.Errorf("unknown role: %v", value)
	}
	return role, nil
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// IsApplicant reports whether the role submits applications.
func (r UserRole) IsApplicant() bool {
	return r == InternRole || r == AttacheeRole
}

func (r UserRole) IsStaff() bool {
	return r.IsValid() && !r.IsApplicant()
}

// NeedsDepartment reports whether an account with this role must be bound to a department.
func (r UserRole) NeedsDepartment() bool {
	switch r {
	case HODRole, ChiefOfStaffRole, PrincipalSecretaryRole:
		return true
	case InternRole, AttacheeRole, HRRole, AdminRole:
		return false
	}
	return false
}

const SystemUser = "System"

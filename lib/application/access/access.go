package access

import (
	apperrors "attachment-portal-backend/lib/utils/app-errors"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"

	"github.com/pkg/errors"
)

type Kind int

const (
	// KindAll sees every application.
	KindAll Kind = iota + 1
	// KindDepartmentPair sees applications routed to one department and subdepartment.
	KindDepartmentPair
	// KindDepartment sees applications routed to any subdepartment of one department.
	KindDepartment
	// KindOwner sees own applications only.
	KindOwner
)

// Scope is the part of the application collection a user may read.
type Scope struct {
	Kind          Kind
	Role          models.UserRole
	UserID        string
	Department    string
	Subdepartment string
}

// ScopeFor resolves the read scope of the user. Administrators manage accounts
// only and get Forbidden.
func ScopeFor(user dbmodels.User) (Scope, error) {
	scope := Scope{
		Role:   user.Role,
		UserID: user.ID,
	}
	switch user.Role {
	case models.HRRole:
		scope.Kind = KindAll
	case models.HODRole:
		scope.Kind = KindDepartmentPair
		scope.Department = user.Department
		scope.Subdepartment = user.Subdepartment
	case models.ChiefOfStaffRole, models.PrincipalSecretaryRole:
		scope.Kind = KindDepartment
		scope.Department = user.Department
	case models.InternRole, models.AttacheeRole:
		scope.Kind = KindOwner
	case models.AdminRole:
		return Scope{}, apperrors.Forbidden("administrators do not review applications")
	default:
		return Scope{}, errors.Errorf("unknown role: %v", user.Role)
	}
	if (scope.Kind == KindDepartmentPair || scope.Kind == KindDepartment) && scope.Department == "" {
		return Scope{}, apperrors.Forbidden("account is not bound to a department")
	}
	return scope, nil
}

// Restrict overrides the scope fields of the requested filter. Filters narrower
// than the scope are kept.
func (s Scope) Restrict(filter dbmodels.ApplicationFilter) dbmodels.ApplicationFilter {
	switch s.Kind {
	case KindAll:
	case KindDepartmentPair:
		filter.Department = s.Department
		filter.Subdepartment = s.Subdepartment
	case KindDepartment:
		filter.Department = s.Department
	case KindOwner:
		filter.ApplicantID = s.UserID
	}
	return filter
}

func (s Scope) CanView(app dbmodels.Application) bool {
	switch s.Kind {
	case KindAll:
		return true
	case KindDepartmentPair:
		return InHODScope(s.Department, s.Subdepartment, app)
	case KindDepartment:
		return app.PreferredDepartment == s.Department
	case KindOwner:
		return app.ApplicantID == s.UserID
	}
	return false
}

// IsStaff is true for scopes that read other users' applications.
func (s Scope) IsStaff() bool {
	return s.Kind == KindAll || s.Kind == KindDepartmentPair || s.Kind == KindDepartment
}

// InHODScope reports whether the application is routed to the given department pair.
func InHODScope(department, subdepartment string, app dbmodels.Application) bool {
	return department != "" &&
		app.PreferredDepartment == department &&
		app.PreferredSubdepartment == subdepartment
}

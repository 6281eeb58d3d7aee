package rbac

import (
	"attachment-portal-backend/models"
	"regexp"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// Rule grants one permission of a module to a set of roles.
type Rule struct {
	Module     models.Module
	Permission models.Permission
	roles      map[models.UserRole]bool
}

func (r Rule) Allows(role models.UserRole) bool {
	return r.roles[role]
}

type PathRule struct {
	Exact    map[string]*Rule
	Patterns []PatternRule
}

type PatternRule struct {
	Pattern *regexp.Regexp
	Rule    *Rule
}

package rbac

import (
	"attachment-portal-backend/models"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Provider interface {
	// FindRule returns the rule guarding the route, nil when the route has none.
	FindRule(method, path string) *Rule
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		rules:       map[HTTPMethod]*PathRule{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	Instance = i
	i.initRules()
}

type impl struct {
	rules       map[HTTPMethod]*PathRule
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) FindRule(method, path string) *Rule {
	pathRule, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil
	}
	path = normalizePath(path)
	if rule, ok := pathRule.Exact[path]; ok {
		return rule
	}
	for _, patternRule := range pathRule.Patterns {
		if patternRule.Pattern.MatchString(path) {
			return patternRule.Rule
		}
	}
	return nil
}

func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return errors.Errorf("no roles for pattern (%v)", swaggerPattern)
	}
	rule := &Rule{
		Module:     module,
		Permission: permission,
		roles:      make(map[models.UserRole]bool, len(roles)),
	}
	for _, role := range roles {
		if !role.IsValid() {
			return errors.Errorf("unknown role %v for pattern (%v)", role, swaggerPattern)
		}
		rule.roles[role] = true
		i.addPermission(role, module, permission)
	}

	pathRule, ok := i.rules[method]
	if !ok {
		pathRule = &PathRule{Exact: map[string]*Rule{}}
		i.rules[method] = pathRule
	}
	if !strings.Contains(path, "{") {
		if _, exists := pathRule.Exact[path]; exists {
			return errors.Errorf("duplicate rule for pattern (%v)", swaggerPattern)
		}
		pathRule.Exact[path] = rule
		return nil
	}
	pattern, err := pathToRegex(path)
	if err != nil {
		return err
	}
	pathRule.Patterns = append(pathRule.Patterns, PatternRule{Pattern: pattern, Rule: rule})
	return nil
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

// addPermission fills the permission map returned to the frontend.
func (i *impl) addPermission(role models.UserRole, module models.Module, permission models.Permission) {
	modules, ok := i.permissions[role]
	if !ok {
		modules = map[models.Module][]models.Permission{}
		i.permissions[role] = modules
	}
	if !slices.Contains(modules[module], permission) {
		modules[module] = append(modules[module], permission)
	}
}

var paramRe = regexp.MustCompile(`\{[^}]+?\}`)

// pathToRegex turns every {param} into a single path segment matcher.
func pathToRegex(path string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(path)
	pattern = strings.NewReplacer(`\{`, "{", `\}`, "}").Replace(pattern)
	pattern = paramRe.ReplaceAllString(pattern, `([^/]+)`)
	regex, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return nil, errors.Wrapf(err, "bad path pattern (%v)", path)
	}
	return regex, nil
}

// parseSwaggerPattern parses "/api/v1/users [post]"
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	bracketStart := strings.LastIndex(pattern, "[")
	bracketEnd := strings.LastIndex(pattern, "]")
	if bracketStart == -1 || bracketEnd <= bracketStart {
		return "", "", errors.Errorf("method not provided for pattern (%v)", pattern)
	}
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[bracketStart+1 : bracketEnd])))
	return normalizePath(pattern[:bracketStart]), method, nil
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

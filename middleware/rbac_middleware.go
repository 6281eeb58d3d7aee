package middleware

import (
	"attachment-portal-backend/lib/rbac"
	apimodels "attachment-portal-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RbacMiddleware checks the role of the token against the route rules.
// Routes without a rule are open to every authenticated user.
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || !userRole.IsValid() {
			return forbidden(ctx)
		}

		rule := rbac.Instance.FindRule(ctx.Method(), ctx.Path())
		if rule == nil || rule.Allows(userRole) {
			return ctx.Next()
		}
		log.
			WithField("user_id", userID).
			WithField("role", userRole).
			WithField("module", rule.Module).
			WithField("permission", rule.Permission).
			Debug("rbac rejected request")
		return forbidden(ctx)
	}
}

func forbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not allowed for your role"))
}

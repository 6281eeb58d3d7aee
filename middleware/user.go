package middleware

import (
	authutils "attachment-portal-backend/lib/utils/auth-utils"
	"attachment-portal-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.ClaimString(authutils.GetClaims(ctx), "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return authutils.ClaimRole(authutils.GetClaims(ctx))
}

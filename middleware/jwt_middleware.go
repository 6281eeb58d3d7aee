package middleware

import (
	"attachment-portal-backend/config"
	"attachment-portal-backend/fiberlog"
	authutils "attachment-portal-backend/lib/utils/auth-utils"
	apimodels "attachment-portal-backend/models/api"
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthorizationRequired accepts access tokens only, refresh tokens are good
// for the refresh endpoint and nothing else.
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			claims := authutils.GetClaims(ctx)
			if authutils.IsRefreshClaims(claims) || GetUserID(ctx) == "" {
				return unauthorized(ctx, "invalid token")
			}
			ctx.Locals(fiberlog.TagUserID, GetUserID(ctx))
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(ctx, "missing or malformed token")
			}
			return unauthorized(ctx, "invalid or expired token")
		},
	})
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(message))
}

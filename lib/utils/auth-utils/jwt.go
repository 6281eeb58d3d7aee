package authutils

import (
	"attachment-portal-backend/config"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const refreshTokenType = "refresh"

func GetToken(user dbmodels.User) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":          user.GetFullName(),
		"sub":           user.ID,
		"role":          string(user.Role),
		"department":    user.Department,
		"subdepartment": user.Subdepartment,
		"exp":           time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":           time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetRefreshToken(userID, name string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"typ":  refreshTokenType,
		"exp":  time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec)).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

// ParseRefreshToken validates a refresh token and returns its subject.
func ParseRefreshToken(tokenString string) (userID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", errors.Wrap(err, "invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid refresh token claims")
	}
	if typ, _ := claims["typ"].(string); typ != refreshTokenType {
		return "", errors.New("token is not a refresh token")
	}
	return claims.GetSubject()
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

// IsRefreshClaims reports whether the claims belong to a refresh token.
func IsRefreshClaims(claims jwt.MapClaims) bool {
	typ, _ := claims["typ"].(string)
	return typ == refreshTokenType
}

func ClaimString(claims jwt.MapClaims, key string) string {
	if value, exist := claims[key]; exist {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

func ClaimRole(claims jwt.MapClaims) models.UserRole {
	return models.UserRole(ClaimString(claims, "role"))
}

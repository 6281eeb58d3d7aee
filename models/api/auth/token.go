package authapimodels

import (
	"attachment-portal-backend/models"
	userapimodels "attachment-portal-backend/models/api/user"
	"strings"

	"github.com/pkg/errors"
)

type JWTResponse struct {
	Token        string                 `json:"token"`
	RefreshToken string                 `json:"refreshToken"`
	User         userapimodels.UserView `json:"user"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r JWTRefreshRequest) Validate() error {
	if len(strings.TrimSpace(r.RefreshToken)) == 0 {
		return errors.New("refresh token must not be empty")
	}
	return nil
}

// MeView is the current user together with the permission map the frontend builds its menu from.
type MeView struct {
	userapimodels.UserView
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}

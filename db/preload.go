package db

import (
	"attachment-portal-backend/config"
	usersstore "attachment-portal-backend/lib/users/store"
	authutils "attachment-portal-backend/lib/utils/auth-utils"
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
}

// addAdmin creates the bootstrap admin account once.
func addAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("admin account not created, ADMIN_EMAIL is not set")
		return
	}
	logger := log.WithField("email", config.Conf.Admin.Email)
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		logger.WithError(err).Error("admin account lookup failed")
		return
	}
	if existedRec != nil {
		return
	}
	if err = authutils.ValidatePassword(config.Conf.Admin.Password); err != nil {
		logger.WithError(err).Error("admin account not created, ADMIN_PASSWORD is too weak")
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		logger.WithError(err).Error("admin account not created")
		return
	}
	rec := dbmodels.User{
		Email:     config.Conf.Admin.Email,
		Password:  hash,
		Role:      models.AdminRole,
		FirstName: config.Conf.Admin.FirstName,
		LastName:  config.Conf.Admin.LastName,
		IsActive:  true,
	}
	if _, err = store.Create(rec); err != nil {
		logger.WithError(err).Error("admin account not created")
		return
	}
	logger.Info("admin account created")
}

package initializers

import (
	"attachment-portal-backend/config"
	"attachment-portal-backend/db"

	log "github.com/sirupsen/logrus"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(conf.Host, conf.Port, conf.Name, conf.User, conf.Password, *conf.DebugMode, *conf.MigrateOnStart)
	if err != nil {
		log.
			WithField("host", conf.Host).
			WithField("database", conf.Name).
			WithError(err).
			Fatal("database is not available")
	}
	db.InitPreload()
}

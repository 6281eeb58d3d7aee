package db

import (
	"attachment-portal-backend/models"
	dbmodels "attachment-portal-backend/models/db"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "failed to migrate User")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "failed to migrate Application")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "failed to migrate FileStorage")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationHistory{}); err != nil {
		return errors.Wrap(err, "failed to migrate ApplicationHistory")
	}
	if err := DB.Exec(inFlightIndexSQL()).Error; err != nil {
		return errors.Wrap(err, "failed to create in-flight application index")
	}
	log.Info("migrations finished")
	return nil
}

// inFlightIndexSQL allows a single in-flight application per applicant.
func inFlightIndexSQL() string {
	statuses := make([]string, 0, len(models.InFlightStatuses))
	for _, status := range models.InFlightStatuses {
		statuses = append(statuses, fmt.Sprintf("'%s'", status))
	}
	return fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON applications (applicant_id) WHERE status IN (%s);",
		InFlightIndexName, strings.Join(statuses, ","))
}

const InFlightIndexName = "idx_applications_in_flight"

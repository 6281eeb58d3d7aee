package initializers

import (
	"attachment-portal-backend/config"
	"attachment-portal-backend/fiberlog"
	"attachment-portal-backend/lib/analytics"
	applicationhandler "attachment-portal-backend/lib/application"
	authhandler "attachment-portal-backend/lib/auth"
	departmentprovider "attachment-portal-backend/lib/dicts/department"
	xlsexport "attachment-portal-backend/lib/export/xls"
	"attachment-portal-backend/lib/notification"
	"attachment-portal-backend/lib/rbac"
	usershandler "attachment-portal-backend/lib/users"
)

var LoggerConfig *fiberlog.Config

// InitAllServices wires the singletons. Order matters, every handler checks
// its dependencies on start.
func InitAllServices() {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3()
	InitSmtp()
	departmentprovider.NewHandler()
	rbac.NewHandler()
	notification.NewHandler()
	xlsexport.NewHandler()
	applicationhandler.NewHandler()
	analytics.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
}

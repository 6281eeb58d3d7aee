package initializers

import (
	"attachment-portal-backend/fiberlog"

	log "github.com/sirupsen/logrus"
)

func newJSONFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger sets up the service logger and returns the request logger
// config. Request logs always go out at debug level.
func InitLogger(level string) *fiberlog.Config {
	log.SetFormatter(newJSONFormatter())
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		logLevel = log.InfoLevel
	}
	log.SetLevel(logLevel)

	requestLogger := log.New()
	requestLogger.SetFormatter(newJSONFormatter())
	requestLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagRoute,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagRequestID,
			fiberlog.TagUserID,
			fiberlog.TagBody,
			fiberlog.TagResBody,
		},
	}
}

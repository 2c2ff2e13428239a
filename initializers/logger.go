package initializers

import (
	log "github.com/sirupsen/logrus"

	"ats-backend/config"
	"ats-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger sets up the global logrus logger and returns the access log config.
func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown log level, info is used")
		level = log.InfoLevel
	}
	log.SetFormatter(jsonFormatter())
	log.SetLevel(level)

	accessLogger := log.New()
	accessLogger.SetFormatter(jsonFormatter())
	accessLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: accessLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagSpaceID,
			fiberlog.TagUserID,
			fiberlog.RequestID,
		},
		SkipPaths: []string{"/health"},
	}
}

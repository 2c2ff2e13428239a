package fiberlog

import "github.com/sirupsen/logrus"

type Config struct {
	// Logger receives the access records, the standard logrus logger when nil
	Logger *logrus.Logger
	Tags   []string
	// SkipPaths are not logged, e.g. health probes
	SkipPaths []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

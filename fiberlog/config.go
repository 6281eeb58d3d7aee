package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	// Logger receives the request entries, the standard logrus logger when nil.
	Logger *logrus.Logger
	Tags   []string
	// SkipPaths are never logged, e.g. health probes.
	SkipPaths []string
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
}

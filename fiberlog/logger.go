package fiberlog

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New logs every request as one record with the configured tags. 5xx answers are
// logged as errors, other non 2xx answers as warnings.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}
	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		var entry *log.Entry
		if cfg.Logger == nil {
			entry = log.WithFields(fields(ftm, c, d))
		} else {
			entry = cfg.Logger.WithFields(fields(ftm, c, d))
		}
		if err != nil {
			entry = entry.WithError(err)
		}
		message := fmt.Sprintf("api request %v %v", c.Method(), c.Path())
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			entry.Error(message)
		case status >= fiber.StatusMultipleChoices:
			entry.Warn(message)
		default:
			entry.Info(message)
		}
		return err
	}
}

// fields evaluates the tags, empty strings are left out
func fields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		value := ft(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		f[k] = value
	}
	return f
}

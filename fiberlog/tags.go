package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	authutils "ats-backend/lib/utils/auth-utils"
)

// FuncTag produces the value logged for one tag
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

const (
	TagPid       = "pid"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagUserAgent = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagSpaceID   = "space_id"
	TagUserID    = "user_id"
	RequestID    = "request_id"
)

// bodies longer than this are cut in the log record
const maxBodyLogLen = 2048

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			if isBinary(string(c.Request().Header.ContentType())) {
				return ""
			}
			return cut(string(c.Body()))
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if isBinary(string(c.Response().Header.ContentType())) {
				return ""
			}
			return cut(string(c.Response().Body()))
		},
		// claims are set by the auth middleware of the mounted group, the tags are read after it ran
		TagSpaceID: func(c *fiber.Ctx, d *data) interface{} {
			return claim(c, "space")
		},
		TagUserID: func(c *fiber.Ctx, d *data) interface{} {
			return claim(c, "sub")
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isBinary(contentType string) bool {
	switch {
	case contentType == "":
		return false
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		return false
	case strings.HasPrefix(contentType, "text/"):
		return false
	}
	return true
}

func cut(value string) string {
	if len(value) <= maxBodyLogLen {
		return value
	}
	return value[:maxBodyLogLen] + "..."
}

func claim(c *fiber.Ctx, name string) string {
	value, _ := authutils.GetClaims(c)[name].(string)
	return value
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	apimodels "ats-backend/models/api"
)

type errNotification struct {
	Code    int    `json:"code"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	SpaceID string `json:"space_id,omitempty"`
	Error   string `json:"error"`
}

var notifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify posts every 5xx answer to addr as a JSON document.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var resp apimodels.Response
		if unmErr := json.Unmarshal(c.Response().Body(), &resp); unmErr != nil {
			log.WithError(unmErr).Warn("error unmarshalling response body in middleware")
		}
		notification := errNotification{
			Code:    statusCode,
			Method:  c.Method(),
			Path:    c.OriginalURL(),
			SpaceID: GetUserSpace(c),
			Error:   resp.Message,
		}
		if r := c.Route(); r != nil {
			notification.Path = r.Path
		}
		if notification.Error == "" {
			notification.Error = string(c.Response().Body())
		}

		go func() {
			payload, mErr := json.Marshal(notification)
			if mErr != nil {
				return
			}
			reqResp, reqErr := notifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("error sending error notification")
				return
			}
			reqResp.Body.Close()
		}()
		return err
	}
}

package middleware

import (
	"attachment-portal-backend/fiberlog"
	apimodels "attachment-portal-backend/models/api"
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type errNotification struct {
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"requestId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Error     string `json:"error"`
}

var notifyClient = &http.Client{Timeout: 5 * time.Second}

// ErrNotify posts every 5xx answer to addr. An empty addr disables it.
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" || c.Response().StatusCode() < fiber.StatusInternalServerError {
			return err
		}
		notification := errNotification{
			Code:      c.Response().StatusCode(),
			Method:    c.Method(),
			Path:      c.OriginalURL(),
			RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
			Error:     string(c.Response().Body()),
		}
		if route := c.Route(); route != nil {
			notification.Path = route.Path
		}
		if userID, ok := c.Locals(fiberlog.TagUserID).(string); ok {
			notification.UserID = userID
		}
		var resp apimodels.Response
		if unmErr := json.Unmarshal(c.Response().Body(), &resp); unmErr != nil {
			log.WithError(unmErr).Debug("5xx response body is not an api response")
		} else if !resp.IsSuccess() && resp.Message != "" {
			notification.Error = resp.Message
		}
		go sendErrNotification(addr, notification)
		return err
	}
}

func sendErrNotification(addr string, notification errNotification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		log.WithError(err).Warn("error notification marshal failed")
		return
	}
	resp, err := notifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
	if err != nil {
		log.WithError(err).Warn("error notification send failed")
		return
	}
	resp.Body.Close()
}

package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LogWebhookHandler serves endpoints that only record what they receive.
// They always answer 200 so upstream verification handshakes succeed.
type LogWebhookHandler struct {
	logger *slog.Logger
}

func NewLogWebhookHandler(logger *slog.Logger) *LogWebhookHandler {
	return &LogWebhookHandler{logger: logger}
}

// LineWebhook logs the LINE platform callback body.
func (h *LogWebhookHandler) LineWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("line webhook: read body failed", "error", err)
		c.String(http.StatusOK, "OK")
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		h.logger.Info("line webhook received", "raw", string(body))
	} else {
		h.logger.Info("line webhook received", "body", pretty.String())
	}
	c.String(http.StatusOK, "OK")
}

// EventWebhook logs a generic JSON event.
func (h *LogWebhookHandler) EventWebhook(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)

	var event any
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Info("event webhook received", "raw", string(body))
	} else {
		h.logger.Info("event webhook received", "event", event)
	}
	c.String(http.StatusOK, "ok")
}

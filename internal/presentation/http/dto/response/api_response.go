package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/order-notifier/pkg/apperror"
)

// WebhookResponse is the envelope returned by the order webhook
type WebhookResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// OK sends a 200 {"ok":true} response
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, WebhookResponse{OK: true})
}

// Failure logs err with its kind and sends {"ok":false,"error":msg}. Every kind
// maps to the same status code.
func Failure(c *gin.Context, logger *slog.Logger, err error) {
	appErr := apperror.GetAppError(err)

	attrs := []any{
		"kind", string(appErr.Kind),
		"error", appErr.Message,
	}
	if appErr.Err != nil {
		attrs = append(attrs, "cause", appErr.Err.Error())
	}
	if requestID, ok := c.Get("request_id"); ok {
		attrs = append(attrs, "request_id", requestID)
	}
	logger.Error("order webhook failed", attrs...)

	c.JSON(appErr.Code, WebhookResponse{
		OK:    false,
		Error: appErr.Message,
	})
}

// MethodNotAllowed sends a plain-text 405
func MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
}

package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/order-notifier/internal/application/service"
	"github.com/sangkips/order-notifier/internal/presentation/http/dto/request"
	"github.com/sangkips/order-notifier/internal/presentation/http/dto/response"
	"github.com/sangkips/order-notifier/pkg/apperror"
)

// OrderWebhookHandler handles POST /order-webhook.
type OrderWebhookHandler struct {
	orderService *service.OrderService
	logger       *slog.Logger
}

// NewOrderWebhookHandler creates a new order webhook handler.
func NewOrderWebhookHandler(orderService *service.OrderService, logger *slog.Logger) *OrderWebhookHandler {
	return &OrderWebhookHandler{orderService: orderService, logger: logger}
}

// Preflight answers the browser CORS preflight.
func (h *OrderWebhookHandler) Preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Status(http.StatusNoContent)
}

// Receive persists the order when a store is configured and pushes the receipt.
func (h *OrderWebhookHandler) Receive(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	if err := h.orderService.CheckConfiguration(); err != nil {
		response.Failure(c, h.logger, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Failure(c, h.logger, apperror.NewValidationError("Invalid request body: "+err.Error()))
		return
	}

	req, err := request.ParseOrderWebhook(body)
	if err != nil {
		response.Failure(c, h.logger, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		response.Failure(c, h.logger, err)
		return
	}

	order, err := h.orderService.Process(c.Request.Context(), input)
	if err != nil {
		response.Failure(c, h.logger, err)
		return
	}

	h.logger.Info("order receipt sent",
		"order_id", order.OrderID,
		"items", len(order.Items),
		"total", order.ResolvedTotal().StringFixed(2),
	)
	response.OK(c)
}

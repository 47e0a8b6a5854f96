package controller

import (
	"context"

	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/handler"
	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(router fiber.Router)
}

// WebhookController is the push-mode intake: the platform POSTs updates
// here instead of the poller pulling them.
type webhookController struct {
	updateHandler *handler.UpdateHandler
	logger        logger.ILogger
}

func NewWebhookController(updateHandler *handler.UpdateHandler, logger logger.ILogger) IWebhookController {
	return &webhookController{
		updateHandler: updateHandler,
		logger:        logger,
	}
}

func (c *webhookController) RegisterRoutes(router fiber.Router) {
	router.Post("/webhook", c.HandleUpdate)
	router.Get("/healthz", c.Health)
}

func (c *webhookController) HandleUpdate(ctx *fiber.Ctx) error {
	update, err := gateway.DecodeUpdate(ctx.Body())
	if err != nil {
		c.logger.Warn("controller.webhook", "Rejected malformed update", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "malformed update"))
	}

	// Acknowledge immediately; the platform retries slow webhooks and
	// duplicate deliveries are worse than asynchronous handling.
	go c.updateHandler.Handle(context.Background(), update)

	return ctx.JSON(serverutils.SuccessResponse[any]("Update accepted", nil))
}

func (c *webhookController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

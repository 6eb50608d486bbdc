package system

import (
	"go-merchant/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	Hub *Hub
}

func NewHealthApi(hub *Hub) api.Route {
	return &HealthApi{
		Hub: hub,
	}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"clients": h.Hub.SubscriberCount(),
		})
	})
}

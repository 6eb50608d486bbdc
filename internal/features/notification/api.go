package notification

import (
	"go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	Controller *NotificationController
	Config     *config.Config
}

func NewNotificationApi(controller *NotificationController, cfg *config.Config) api.Route {
	return &NotificationApi{
		Controller: controller,
		Config:     cfg,
	}
}

func (api *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.Controller.List)
	group.Get("/unread-count", api.Controller.GetUnreadCount)
	group.Post("/read-all", api.Controller.MarkAllAsRead)
	group.Post("/:id/read", api.Controller.MarkAsRead)
}

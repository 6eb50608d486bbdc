package notification

import (
	"strconv"

	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

func requireUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "invalid user ID")
	}
	return userID, nil
}

// List godoc
// @Summary List notifications
// @Tags notification
// @Produce json
// @Router /api/notifications [get]
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	notifications, total, err := ctrl.service.GetUserNotifications(c.UserContext(), userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"data":  notifications,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUnreadCount godoc
// @Summary Unread notification count
// @Tags notification
// @Produce json
// @Router /api/notifications/unread-count [get]
func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	count, err := ctrl.service.GetUnreadCount(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkAsRead godoc
// @Summary Mark a notification read
// @Tags notification
// @Router /api/notifications/{id}/read [post]
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := ctrl.service.MarkAsRead(c.UserContext(), c.Params("id"), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications read
// @Tags notification
// @Router /api/notifications/read-all [post]
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := ctrl.service.MarkAllAsRead(c.UserContext(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

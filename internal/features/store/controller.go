package store

import (
	"errors"

	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreController struct {
	StoreService StoreService
}

func NewStoreController(storeService StoreService) *StoreController {
	return &StoreController{
		StoreService: storeService,
	}
}

// ListStores godoc
// @Summary List the merchant's stores
// @Tags store
// @Produce json
// @Success 200 {array} Store
// @Router /api/stores [get]
func (ctrl *StoreController) ListStores(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	stores, err := ctrl.StoreService.ListStores(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stores)
}

// CreateStore godoc
// @Summary Create a store
// @Tags store
// @Accept json
// @Produce json
// @Success 201 {object} Store
// @Router /api/stores [post]
func (ctrl *StoreController) CreateStore(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var st Store
	if err := c.BodyParser(&st); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user ID"})
	}
	st.UserID = userID

	if err := ctrl.StoreService.CreateStore(c.UserContext(), &st); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

// DeleteStore godoc
// @Summary Delete a store
// @Tags store
// @Router /api/stores/{id} [delete]
func (ctrl *StoreController) DeleteStore(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.StoreService.DeleteStore(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectStore godoc
// @Summary Select the active store
// @Tags store
// @Router /api/stores/{id}/select [post]
func (ctrl *StoreController) SelectStore(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := ctrl.StoreService.SelectStore(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Store selected"})
}

// ActiveStore godoc
// @Summary Get the active store
// @Tags store
// @Produce json
// @Success 200 {object} Store
// @Router /api/stores/active [get]
func (ctrl *StoreController) ActiveStore(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	st, err := ctrl.StoreService.ActiveStore(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no stores"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(st)
}

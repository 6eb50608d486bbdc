package layout

import (
	"errors"

	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LayoutController struct {
	LayoutService LayoutService
}

func NewLayoutController(layoutService LayoutService) *LayoutController {
	return &LayoutController{
		LayoutService: layoutService,
	}
}

type createLayoutRequest struct {
	Name    string `json:"name"`
	BasedOn string `json:"basedOn,omitempty"`
}

type editingRequest struct {
	IsEditing bool `json:"isEditing"`
}

func userID(c *fiber.Ctx) (string, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return claims.UserID, nil
}

// GetState godoc
// @Summary Get dashboard state
// @Description Layout collection, active layout id, loading and editing flags
// @Tags layout
// @Produce json
// @Success 200 {object} State
// @Router /api/layouts [get]
func (ctrl *LayoutController) GetState(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	state, err := ctrl.LayoutService.State(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(state)
}

// GetLayout godoc
// @Summary Get one layout
// @Tags layout
// @Produce json
// @Success 200 {object} DashboardLayout
// @Router /api/layouts/{id} [get]
func (ctrl *LayoutController) GetLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	state, err := ctrl.LayoutService.State(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	id := c.Params("id")
	for _, l := range state.Layouts {
		if l.ID == id {
			return c.JSON(l)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "layout not found"})
}

// CreateLayout godoc
// @Summary Create layout
// @Description Create a layout, copying widgets from basedOn or the active layout
// @Tags layout
// @Accept json
// @Produce json
// @Success 201 {object} DashboardLayout
// @Router /api/layouts [post]
func (ctrl *LayoutController) CreateLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req createLayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	created, err := ctrl.LayoutService.CreateLayout(c.UserContext(), uid, req.Name, req.BasedOn)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateLayout godoc
// @Summary Update layout
// @Tags layout
// @Accept json
// @Router /api/layouts/{id} [put]
func (ctrl *LayoutController) UpdateLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var patch LayoutPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.LayoutService.UpdateLayout(c.UserContext(), uid, c.Params("id"), patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteLayout godoc
// @Summary Delete layout
// @Description The default layout cannot be deleted
// @Tags layout
// @Router /api/layouts/{id} [delete]
func (ctrl *LayoutController) DeleteLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := ctrl.LayoutService.DeleteLayout(c.UserContext(), uid, c.Params("id")); err != nil {
		if errors.Is(err, ErrDefaultLayout) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetActiveLayout godoc
// @Summary Set active layout
// @Tags layout
// @Router /api/layouts/{id}/activate [post]
func (ctrl *LayoutController) SetActiveLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := ctrl.LayoutService.SetActiveLayout(c.UserContext(), uid, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetEditing godoc
// @Summary Toggle editing mode
// @Tags layout
// @Accept json
// @Router /api/layouts/editing [put]
func (ctrl *LayoutController) SetEditing(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req editingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.LayoutService.SetEditing(c.UserContext(), uid, req.IsEditing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddWidget godoc
// @Summary Add widget to active layout
// @Tags layout
// @Accept json
// @Produce json
// @Router /api/layouts/widgets [post]
func (ctrl *LayoutController) AddWidget(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var widget WidgetConfig
	if err := c.BodyParser(&widget); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !ValidWidgetType(widget.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid widget type"})
	}

	id, err := ctrl.LayoutService.AddWidget(c.UserContext(), uid, widget)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if id == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no active layout"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// UpdateWidget godoc
// @Summary Update widget fields
// @Tags layout
// @Accept json
// @Router /api/layouts/widgets/{id} [put]
func (ctrl *LayoutController) UpdateWidget(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var patch WidgetPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.LayoutService.UpdateWidget(c.UserContext(), uid, c.Params("id"), patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveWidget godoc
// @Summary Remove widget from active layout
// @Tags layout
// @Router /api/layouts/widgets/{id} [delete]
func (ctrl *LayoutController) RemoveWidget(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := ctrl.LayoutService.RemoveWidget(c.UserContext(), uid, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MoveWidget godoc
// @Summary Move widget
// @Tags layout
// @Accept json
// @Router /api/layouts/widgets/{id}/move [put]
func (ctrl *LayoutController) MoveWidget(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var position WidgetPosition
	if err := c.BodyParser(&position); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.LayoutService.MoveWidget(c.UserContext(), uid, c.Params("id"), position); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResizeWidget godoc
// @Summary Resize widget
// @Tags layout
// @Accept json
// @Router /api/layouts/widgets/{id}/resize [put]
func (ctrl *LayoutController) ResizeWidget(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req struct {
		Size WidgetSize `json:"size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.LayoutService.ResizeWidget(c.UserContext(), uid, c.Params("id"), req.Size); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleWidgetVisibility godoc
// @Summary Toggle widget visibility
// @Tags layout
// @Router /api/layouts/widgets/{id}/toggle-visibility [post]
func (ctrl *LayoutController) ToggleWidgetVisibility(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := ctrl.LayoutService.ToggleWidgetVisibility(c.UserContext(), uid, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetToDefault godoc
// @Summary Reset active layout widgets to the seed set
// @Tags layout
// @Router /api/layouts/widgets/reset [post]
func (ctrl *LayoutController) ResetToDefault(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := ctrl.LayoutService.ResetToDefault(c.UserContext(), uid); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VisibleWidgets godoc
// @Summary Visible widgets of the active layout
// @Tags layout
// @Produce json
// @Router /api/layouts/widgets/visible [get]
func (ctrl *LayoutController) VisibleWidgets(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	widgets, err := ctrl.LayoutService.VisibleWidgets(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(widgets)
}

// ExportLayout godoc
// @Summary Export layout descriptor
// @Tags layout
// @Produce json
// @Router /api/layouts/{id}/export [get]
func (ctrl *LayoutController) ExportLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if id == "active" {
		id = ""
	}

	export, err := ctrl.LayoutService.ExportLayout(c.UserContext(), uid, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if export == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "layout not found"})
	}
	return c.JSON(export)
}

// ImportLayout godoc
// @Summary Import layout from descriptor
// @Tags layout
// @Accept json
// @Produce json
// @Router /api/layouts/import [post]
func (ctrl *LayoutController) ImportLayout(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	name := c.Query("name")

	imported, err := ctrl.LayoutService.ImportLayout(c.UserContext(), uid, c.Body(), name)
	if err != nil {
		if errors.Is(err, ErrInvalidLayout) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(imported)
}

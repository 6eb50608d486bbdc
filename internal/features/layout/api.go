package layout

import (
	"go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LayoutApi struct {
	LayoutController *LayoutController
	Config           *config.Config
}

func NewLayoutApi(layoutController *LayoutController, cfg *config.Config) api.Route {
	return &LayoutApi{
		LayoutController: layoutController,
		Config:           cfg,
	}
}

func (api *LayoutApi) Setup(app *fiber.App) {
	group := app.Group("/api/layouts", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.LayoutController.GetState)
	group.Post("/", api.LayoutController.CreateLayout)
	group.Put("/editing", api.LayoutController.SetEditing)
	group.Post("/import", api.LayoutController.ImportLayout)

	// Widget routes precede the :id routes so "widgets" is not captured as a layout id
	group.Post("/widgets", api.LayoutController.AddWidget)
	group.Get("/widgets/visible", api.LayoutController.VisibleWidgets)
	group.Post("/widgets/reset", api.LayoutController.ResetToDefault)
	group.Put("/widgets/:id", api.LayoutController.UpdateWidget)
	group.Delete("/widgets/:id", api.LayoutController.RemoveWidget)
	group.Put("/widgets/:id/move", api.LayoutController.MoveWidget)
	group.Put("/widgets/:id/resize", api.LayoutController.ResizeWidget)
	group.Post("/widgets/:id/toggle-visibility", api.LayoutController.ToggleWidgetVisibility)

	group.Get("/:id", api.LayoutController.GetLayout)
	group.Put("/:id", api.LayoutController.UpdateLayout)
	group.Delete("/:id", api.LayoutController.DeleteLayout)
	group.Post("/:id/activate", api.LayoutController.SetActiveLayout)
	group.Get("/:id/export", api.LayoutController.ExportLayout)
}

package store

import (
	"go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StoreApi struct {
	StoreController *StoreController
	Config          *config.Config
}

func NewStoreApi(storeController *StoreController, cfg *config.Config) api.Route {
	return &StoreApi{
		StoreController: storeController,
		Config:          cfg,
	}
}

func (api *StoreApi) Setup(app *fiber.App) {
	group := app.Group("/api/stores", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.StoreController.ListStores)
	group.Post("/", api.StoreController.CreateStore)
	group.Get("/active", api.StoreController.ActiveStore)
	group.Delete("/:id", api.StoreController.DeleteStore)
	group.Post("/:id/select", api.StoreController.SelectStore)
}

package auth

import (
	"go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, cfg *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers all auth-related routes
func (h *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	// Public routes
	group.Post("/register", h.controller.Register)
	group.Post("/login", h.controller.Login)

	group.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}

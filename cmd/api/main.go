package main

import (
	"context"
	"fmt"
	common_api "go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/database"
	"go-merchant/internal/features/auth"
	"go-merchant/internal/features/layout"
	"go-merchant/internal/features/notification"
	"go-merchant/internal/features/report"
	"go-merchant/internal/features/store"
	"go-merchant/internal/features/system"
	"go-merchant/internal/kvstore"
	"go-merchant/internal/logger"
	"go-merchant/internal/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           Merchant Dashboard API
// @version         1.0
// @description     Backend for the merchant dashboard app: layouts, widgets,
// @description     stores, notifications and sales reporting.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database & Key-Value Store
			database.NewDatabase,
			kvstore.NewMongoStore,

			// Event Hub
			system.NewHub,

			// Initialize Repository
			auth.NewMerchantRepository,
			store.NewStoreRepository,
			notification.NewNotificationRepository,
			report.NewSalesConnector,

			// Initialize Service
			auth.NewAuthService,
			store.NewStoreService,
			layout.NewLayoutService,
			notification.NewNotificationService,
			notification.NewJanitor,
			report.NewReportService,

			// Interface Adapters to satisfy Fx
			func(h *system.Hub) layout.EventPublisher { return h },
			func(h *system.Hub) notification.EventPublisher { return h },

			// Initialize Controller
			auth.NewAuthController,
			store.NewStoreController,
			layout.NewLayoutController,
			notification.NewNotificationController,
			report.NewReportController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(store.NewStoreApi),
			AsRoute(layout.NewLayoutApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(report.NewReportApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, janitor *notification.Janitor) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return janitor.Start()
					},
					OnStop: func(ctx context.Context) error {
						return janitor.Stop()
					},
				})
			},
		),
	)

	app.Run()
}

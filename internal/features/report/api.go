package report

import (
	"go-merchant/internal/common/api"
	"go-merchant/internal/config"
	"go-merchant/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, cfg *config.Config) api.Route {
	return &ReportApi{
		ReportController: reportController,
		Config:           cfg,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/sales", api.ReportController.SalesSummary)
	group.Get("/sales/export", api.ReportController.ExportSales)
	group.Get("/top-products", api.ReportController.TopProducts)
}

package report

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{
		ReportService: reportService,
	}
}

func (ctrl *ReportController) statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrReportsUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// SalesSummary godoc
// @Summary Sales summary for a store and date range
// @Tags report
// @Produce json
// @Param store_id query string true "Store ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} SalesSummary
// @Router /api/reports/sales [get]
func (ctrl *ReportController) SalesSummary(c *fiber.Ctx) error {
	summary, err := ctrl.ReportService.SalesSummary(
		c.UserContext(), c.Query("store_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(ctrl.statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}

// TopProducts godoc
// @Summary Best selling products for a store and date range
// @Tags report
// @Produce json
// @Router /api/reports/top-products [get]
func (ctrl *ReportController) TopProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	products, err := ctrl.ReportService.TopProducts(
		c.UserContext(), c.Query("store_id"), c.Query("from"), c.Query("to"), limit)
	if err != nil {
		return c.Status(ctrl.statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(products)
}

// ExportSales godoc
// @Summary Download the sales summary as an Excel workbook
// @Tags report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /api/reports/sales/export [get]
func (ctrl *ReportController) ExportSales(c *fiber.Ctx) error {
	data, filename, err := ctrl.ReportService.ExportSalesToExcel(
		c.UserContext(), c.Query("store_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(ctrl.statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

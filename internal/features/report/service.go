package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var ErrInvalidDateRange = errors.New("invalid date range")

type ReportService interface {
	SalesSummary(ctx context.Context, storeID, from, to string) (*SalesSummary, error)
	TopProducts(ctx context.Context, storeID, from, to string, limit int) ([]ProductSalesRow, error)
	ExportSalesToExcel(ctx context.Context, storeID, from, to string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	Connector *SalesConnector
}

func NewReportService(connector *SalesConnector) ReportService {
	return &ReportServiceImpl{
		Connector: connector,
	}
}

// validateRange checks both bounds parse as dates and from does not follow to.
func validateRange(from, to string) error {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return ErrInvalidDateRange
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

func (s *ReportServiceImpl) SalesSummary(ctx context.Context, storeID, from, to string) (*SalesSummary, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	days, err := s.Connector.DailySales(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		StoreID: storeID,
		From:    from,
		To:      to,
		Days:    days,
	}
	for _, d := range days {
		summary.TotalOrders += d.Orders
		summary.TotalRevenue += d.Revenue
	}
	return summary, nil
}

func (s *ReportServiceImpl) TopProducts(ctx context.Context, storeID, from, to string, limit int) ([]ProductSalesRow, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.Connector.TopProducts(ctx, storeID, from, to, limit)
}

// ExportSalesToExcel renders the daily sales series as a spreadsheet.
func (s *ReportServiceImpl) ExportSalesToExcel(ctx context.Context, storeID, from, to string) ([]byte, string, error) {
	summary, err := s.SalesSummary(ctx, storeID, from, to)
	if err != nil {
		return nil, "", err
	}

	data, err := buildSalesWorkbook(summary)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales_%s_%s_%s", storeID, from, to)
	if !strings.HasSuffix(filename, ".xlsx") {
		filename += ".xlsx"
	}
	return data, filename, nil
}

func buildSalesWorkbook(summary *SalesSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	columns := []string{"Day", "Orders", "Revenue"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, day := range summary.Days {
		dayCell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		ordersCell, _ := excelize.CoordinatesToCellName(2, rowIdx+2)
		revenueCell, _ := excelize.CoordinatesToCellName(3, rowIdx+2)
		f.SetCellValue(sheetName, dayCell, day.Day.Format("2006-01-02"))
		f.SetCellValue(sheetName, ordersCell, day.Orders)
		f.SetCellValue(sheetName, revenueCell, day.Revenue)
	}

	// Totals row under the series
	totalRow := len(summary.Days) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	ordersCell, _ := excelize.CoordinatesToCellName(2, totalRow)
	revenueCell, _ := excelize.CoordinatesToCellName(3, totalRow)
	f.SetCellValue(sheetName, labelCell, "Total")
	f.SetCellStyle(sheetName, labelCell, labelCell, headerStyle)
	f.SetCellValue(sheetName, ordersCell, summary.TotalOrders)
	f.SetCellValue(sheetName, revenueCell, summary.TotalRevenue)

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

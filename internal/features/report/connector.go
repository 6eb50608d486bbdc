package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-merchant/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrReportsUnavailable is returned when no reporting database is configured
// or reachable.
var ErrReportsUnavailable = errors.New("reporting database not available")

// SalesConnector reads sales data from the merchant's Postgres reporting
// database. The application never writes to it.
type SalesConnector struct {
	db *sql.DB
}

// NewSalesConnector opens the reporting connection when REPORTS_DSN is set.
// A missing DSN is not an error; the report endpoints degrade instead.
func NewSalesConnector(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*SalesConnector, error) {
	c := &SalesConnector{}

	if cfg.ReportsDSN == "" {
		log.Warn("REPORTS_DSN not set, reporting disabled")
		return c, nil
	}

	db, err := sql.Open("postgres", cfg.ReportsDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open reporting database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	c.db = db

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("failed to ping reporting database: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return c, nil
}

// DailySales aggregates order totals per day for one store within a range.
func (c *SalesConnector) DailySales(ctx context.Context, storeID string, from, to string) ([]DailySalesRow, error) {
	if c.db == nil {
		return nil, ErrReportsUnavailable
	}

	const query = `
		SELECT DATE(created_at) AS day,
		       COUNT(*)         AS orders,
		       COALESCE(SUM(total), 0) AS revenue
		FROM orders
		WHERE store_id = $1
		  AND created_at >= $2::date
		  AND created_at < $3::date + INTERVAL '1 day'
		GROUP BY DATE(created_at)
		ORDER BY day`

	rows, err := c.db.QueryContext(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to execute sales query: %w", err)
	}
	defer rows.Close()

	var result []DailySalesRow
	for rows.Next() {
		var row DailySalesRow
		if err := rows.Scan(&row.Day, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// TopProducts returns the best selling products for one store within a range.
func (c *SalesConnector) TopProducts(ctx context.Context, storeID string, from, to string, limit int) ([]ProductSalesRow, error) {
	if c.db == nil {
		return nil, ErrReportsUnavailable
	}

	const query = `
		SELECT p.name,
		       SUM(oi.quantity)            AS units,
		       COALESCE(SUM(oi.line_total), 0) AS revenue
		FROM order_items oi
		JOIN orders o   ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.store_id = $1
		  AND o.created_at >= $2::date
		  AND o.created_at < $3::date + INTERVAL '1 day'
		GROUP BY p.name
		ORDER BY units DESC
		LIMIT $4`

	rows, err := c.db.QueryContext(ctx, query, storeID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute product query: %w", err)
	}
	defer rows.Close()

	var result []ProductSalesRow
	for rows.Next() {
		var row ProductSalesRow
		if err := rows.Scan(&row.Name, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

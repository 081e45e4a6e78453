package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockReportLine una fila del reporte de existencias.
type StockReportLine struct {
	Code         string
	Name         string
	CategoryName string
	Stock        int64
	MinStock     *int64
	Price        decimal.Decimal
	LowStock     bool
}

// StockReport datos del reporte de existencias de productos activos.
type StockReport struct {
	GeneratedAt time.Time
	Lines       []StockReportLine
	LowStock    int
}

// StockReportGenerator genera la representación en PDF del reporte.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-core/internal/domain/repository"
)

// ReportUseCase genera el reporte de existencias en PDF.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	generator   StockReportGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, generator: generator, now: time.Now}
}

// BuildStockReport arma los datos del reporte a partir de los productos activos.
func (uc *ReportUseCase) BuildStockReport(ctx context.Context) (StockReport, error) {
	views, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return StockReport{}, err
	}
	report := StockReport{GeneratedAt: uc.now(), Lines: make([]StockReportLine, 0, len(views))}
	for _, v := range views {
		line := StockReportLine{
			Name:     v.Name,
			Stock:    v.Stock,
			MinStock: v.MinStock,
			Price:    v.Price,
			LowStock: v.LowStock(),
		}
		if v.Code != nil {
			line.Code = *v.Code
		}
		if v.CategoryName != nil {
			line.CategoryName = *v.CategoryName
		}
		if line.LowStock {
			report.LowStock++
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}

// StockReport devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) StockReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	report, err := uc.BuildStockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("generar reporte de existencias: %w", err)
	}
	return pdfBytes, "existencias-" + report.GeneratedAt.Format("20060102-1504") + ".pdf", nil
}

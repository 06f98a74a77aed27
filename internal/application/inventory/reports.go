package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// Límites del listado de movimientos recientes.
const (
	DefaultRecentLimit = 200
	MaxRecentLimit     = 500
)

// StockReport datos del reporte PDF de inventario.
type StockReport struct {
	Workshop    string
	Currency    string
	GeneratedAt time.Time
	Rows        []StockReportRow
}

// StockReportRow una fila del reporte. LastPrice es nil si el producto no tiene precios.
type StockReportRow struct {
	Code         string
	Name         string
	Unit         string
	Stock        int
	MinStock     int
	LowStock     bool
	LastPrice    *decimal.Decimal
	LastCurrency string
	LastSupplier string
}

// StockReportRenderer genera el PDF del reporte de inventario.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// ReportUseCase consultas de solo lectura sobre inventario: stock global, stock bajo,
// últimos movimientos y reporte PDF.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	priceRepo   repository.SupplierPriceRepository
	renderer    StockReportRenderer
	workshop    string
	currency    string
	now         Clock
}

// NewReportUseCase construye el caso de uso. renderer puede ser nil si no se sirve el PDF.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	priceRepo repository.SupplierPriceRepository,
	renderer StockReportRenderer,
	workshop, currency string,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		priceRepo:   priceRepo,
		renderer:    renderer,
		workshop:    workshop,
		currency:    currency,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now Clock) *ReportUseCase {
	uc.now = now
	return uc
}

// IsLowStock stock en o bajo el mínimo.
func IsLowStock(stock, minStock int) bool {
	return stock <= minStock
}

// StockLevels inventario global: todos los productos con su stock derivado.
func (uc *ReportUseCase) StockLevels(ctx context.Context) ([]dto.StockLevelDTO, error) {
	levels, err := uc.productRepo.ListStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, toStockLevelDTO(l))
	}
	return out, nil
}

// LowStock productos con stock <= min_stock.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.StockLevelDTO, error) {
	levels, err := uc.productRepo.ListStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelDTO, 0)
	for _, l := range levels {
		if IsLowStock(l.Stock, l.Product.MinStock) {
			out = append(out, toStockLevelDTO(l))
		}
	}
	return out, nil
}

// RecentMovements últimos movimientos. limit <= 0 usa 200; el máximo es 500.
func (uc *ReportUseCase) RecentMovements(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	list, err := uc.movRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ProductMovements kardex de un producto.
func (uc *ReportUseCase) ProductMovements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// StockReportPDF arma el reporte con el último precio de cada producto y lo renderiza.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("reporte PDF no configurado")
	}
	levels, err := uc.productRepo.ListStockLevels(ctx)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	report := StockReport{
		Workshop:    uc.workshop,
		Currency:    uc.currency,
		GeneratedAt: now,
		Rows:        make([]StockReportRow, 0, len(levels)),
	}
	for _, l := range levels {
		row := StockReportRow{
			Code:     l.Product.Code,
			Name:     l.Product.Name,
			Unit:     l.Product.Unit,
			Stock:    l.Stock,
			MinStock: l.Product.MinStock,
			LowStock: IsLowStock(l.Stock, l.Product.MinStock),
		}
		prices, err := uc.priceRepo.ListByProduct(ctx, l.Product.ID, 1)
		if err != nil {
			return nil, "", err
		}
		if len(prices) > 0 {
			last := prices[0]
			row.LastPrice = &last.Price
			row.LastCurrency = last.Currency
			row.LastSupplier = last.SupplierName
		}
		report.Rows = append(report.Rows, row)
	}

	pdf, err := uc.renderer.RenderStockReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("inventario-%s.pdf", now.Format("20060102")), nil
}

func toStockLevelDTO(l repository.StockLevel) dto.StockLevelDTO {
	return dto.StockLevelDTO{
		ProductID: l.Product.ID,
		Code:      l.Product.Code,
		Name:      l.Product.Name,
		Unit:      l.Product.Unit,
		Stock:     l.Stock,
		MinStock:  l.Product.MinStock,
		LowStock:  IsLowStock(l.Stock, l.Product.MinStock),
	}
}

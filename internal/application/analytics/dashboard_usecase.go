// Package analytics contiene el resumen del dashboard del taller.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// DashboardUseCase genera el resumen de inventario del día y del mes en curso.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movRepo repository.InventoryMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movRepo: movRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. ListStockLevels      → ProductCount + LowStockCount
//  2. SumByPeriod(hoy)     → TodayIn + TodayOut
//  3. SumByPeriod(mes)     → MonthIn + MonthOut
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type levelsResult struct {
		levels []repository.StockLevel
		err    error
	}
	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}

	levelsCh := make(chan levelsResult, 1)
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)

	go func() {
		levels, err := uc.productRepo.ListStockLevels(ctx)
		levelsCh <- levelsResult{levels, err}
	}()
	go func() {
		t, err := uc.movRepo.SumByPeriod(ctx, todayStart, tomorrow)
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.movRepo.SumByPeriod(ctx, monthStart, tomorrow)
		monthCh <- totalsResult{t, err}
	}()

	levels := <-levelsCh
	today := <-todayCh
	month := <-monthCh

	if levels.err != nil {
		return nil, fmt.Errorf("dashboard: stock: %w", levels.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos del mes: %w", month.err)
	}

	low := 0
	for _, l := range levels.levels {
		if inventory.IsLowStock(l.Stock, l.Product.MinStock) {
			low++
		}
	}

	return &dto.DashboardSummaryDTO{
		ProductCount:  len(levels.levels),
		LowStockCount: low,
		TodayIn:       today.totals.In,
		TodayOut:      today.totals.Out,
		MonthIn:       month.totals.In,
		MonthOut:      month.totals.Out,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

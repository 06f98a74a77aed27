package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
)

// DeliveryEstimator estima la fecha de entrega de una cantidad de un producto.
//
// Orden de decisión:
//  1. stock suficiente: hoy.
//  2. promedio de lead times de los proveedores con precio registrado para el producto.
//  3. lead time del producto; nulo o 0 equivale a 7 días.
//
// Los errores de acceso a datos se propagan sin reintentos.
type DeliveryEstimator struct {
	stock     StockReader
	leadTimes LeadTimeLister
	products  ProductGetter
	metrics   Metrics
	now       Clock
}

// NewDeliveryEstimator construye el estimador. metrics puede ser nil.
func NewDeliveryEstimator(stock StockReader, leadTimes LeadTimeLister, products ProductGetter, metrics Metrics) *DeliveryEstimator {
	return &DeliveryEstimator{
		stock:     stock,
		leadTimes: leadTimes,
		products:  products,
		metrics:   metrics,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (e *DeliveryEstimator) WithClock(now Clock) *DeliveryEstimator {
	e.now = now
	return e
}

// Estimate calcula la fecha estimada para requested unidades de productID.
// requested no se valida: 0 o negativo siempre es entrega inmediata.
// Si hay que recurrir al lead time del producto y el producto no existe devuelve domain.ErrNotFound.
func (e *DeliveryEstimator) Estimate(ctx context.Context, productID string, requested int) (*inventory.Estimate, error) {
	stock, err := e.stock.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := e.now()
	if stock >= requested {
		return e.done(inventory.EstimateDelivery(now, stock, requested, nil, nil)), nil
	}

	leadTimes, err := e.leadTimes.ListLeadTimesByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("lead times de %s: %w", productID, err)
	}
	if _, ok := inventory.AverageLeadTime(leadTimes); ok {
		return e.done(inventory.EstimateDelivery(now, stock, requested, leadTimes, nil)), nil
	}

	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", productID, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return e.done(inventory.EstimateDelivery(now, stock, requested, leadTimes, product)), nil
}

func (e *DeliveryEstimator) done(est inventory.Estimate) *inventory.Estimate {
	if e.metrics != nil {
		e.metrics.IncEstimate(est.Source)
	}
	return &est
}

// EstimateMessage texto para mostrar al usuario.
func EstimateMessage(est *inventory.Estimate) string {
	if est.Immediate() {
		return fmt.Sprintf("En stock (%d), entrega inmediata", est.Stock)
	}
	return fmt.Sprintf("Stock actual %d. Fecha estimada llegada: %s", est.Stock, est.Date.Format(time.DateOnly))
}

// ToDeliveryEstimateResponse mapea la estimación al DTO de salida.
func ToDeliveryEstimateResponse(productID string, requested int, est *inventory.Estimate) dto.DeliveryEstimateResponse {
	return dto.DeliveryEstimateResponse{
		ProductID:    productID,
		Requested:    requested,
		Stock:        est.Stock,
		Date:         est.Date.Format(time.DateOnly),
		Immediate:    est.Immediate(),
		LeadTimeDays: est.LeadTimeDays,
		Source:       est.Source,
		Message:      EstimateMessage(est),
	}
}

package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/inventory"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(offset int) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func intp(v int) *int { return &v }

type countingMetrics struct {
	movements map[string]int
	estimates map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{movements: map[string]int{}, estimates: map[string]int{}}
}

func (m *countingMetrics) IncMovement(t string) { m.movements[t]++ }
func (m *countingMetrics) IncEstimate(s string) { m.estimates[s]++ }

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	estimator *appinventory.DeliveryEstimator
	metrics   *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	m := newCountingMetrics()
	est := appinventory.NewDeliveryEstimator(
		appinventory.NewLedgerReader(store.Movements()),
		store.Prices(),
		store.Products(),
		m,
	).WithClock(clock)
	return &fixture{ctx: context.Background(), store: store, estimator: est, metrics: m}
}

func (f *fixture) product(t *testing.T, id string, leadTime *int) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(f.ctx, &entity.Product{ID: id, Code: id, Name: id, LeadTimeDays: leadTime}))
}

func (f *fixture) move(t *testing.T, productID string, d entity.Delta) {
	t.Helper()
	require.NoError(t, f.store.Movements().Create(f.ctx, &entity.InventoryMovement{
		ID: uuid.NewString(), ProductID: productID, Delta: d, Date: fixedNow,
	}))
}

func (f *fixture) supplierPrice(t *testing.T, supplierID, productID string, leadTime *int) {
	t.Helper()
	if s, _ := f.store.Suppliers().GetByID(f.ctx, supplierID); s == nil {
		require.NoError(t, f.store.Suppliers().Create(f.ctx, &entity.Supplier{ID: supplierID, Name: supplierID, LeadTimeDays: leadTime}))
	}
	require.NoError(t, f.store.Prices().Create(f.ctx, &entity.SupplierPrice{
		ID: uuid.NewString(), SupplierID: supplierID, ProductID: productID, Currency: "BOB", Date: fixedNow,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estimate
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimate_StockSuficienteEsHoy(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", nil)
	f.move(t, "p1", entity.In(10))
	f.move(t, "p1", entity.Out(3))

	est, err := f.estimator.Estimate(f.ctx, "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, day(0), est.Date)
	assert.Equal(t, 7, est.Stock)
	assert.True(t, est.Immediate())
	assert.Equal(t, 1, f.metrics.estimates[inventory.SourceStock])
}

func TestEstimate_StockIgualAlPedidoEsHoy(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", nil)
	f.move(t, "p1", entity.In(4))

	est, err := f.estimator.Estimate(f.ctx, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, day(0), est.Date)
}

func TestEstimate_PedidoCeroONegativoEsHoy(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", nil)
	f.move(t, "p1", entity.Out(2))

	est, err := f.estimator.Estimate(f.ctx, "p1", -5)
	require.NoError(t, err)
	assert.Equal(t, day(0), est.Date)
	assert.Equal(t, -2, est.Stock, "el stock negativo se informa tal cual")
}

func TestEstimate_PromedioDeProveedores(t *testing.T) {
	tests := []struct {
		name      string
		leadTimes []*int
		wantDays  int
	}{
		{"un proveedor", []*int{intp(3)}, 3},
		{"mitad redondea al par hacia arriba", []*int{intp(5), intp(10)}, 8},
		{"mitad redondea al par hacia abajo", []*int{intp(5), intp(8)}, 6},
		{"lead time cero cuenta", []*int{intp(0), intp(4)}, 2},
		{"nulos se ignoran", []*int{nil, intp(9)}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.product(t, "p1", intp(30))
			f.move(t, "p1", entity.In(1))
			for i, lt := range tt.leadTimes {
				f.supplierPrice(t, string(rune('a'+i)), "p1", lt)
			}

			est, err := f.estimator.Estimate(f.ctx, "p1", 2)
			require.NoError(t, err)
			assert.Equal(t, day(tt.wantDays), est.Date)
			assert.Equal(t, 1, est.Stock)
			assert.Equal(t, inventory.SourceSuppliers, est.Source)
		})
	}
}

func TestEstimate_PreciosRepetidosPesanDoble(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", nil)
	f.supplierPrice(t, "rapido", "p1", intp(2))
	f.supplierPrice(t, "rapido", "p1", intp(2))
	f.supplierPrice(t, "lento", "p1", intp(11))

	est, err := f.estimator.Estimate(f.ctx, "p1", 1)
	require.NoError(t, err)
	// (2 + 2 + 11) / 3 = 5
	assert.Equal(t, day(5), est.Date)
}

func TestEstimate_SinProveedoresUsaProducto(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", intp(12))

	est, err := f.estimator.Estimate(f.ctx, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, day(12), est.Date)
	assert.Equal(t, 0, est.Stock)
	assert.Equal(t, inventory.SourceProduct, est.Source)
}

func TestEstimate_ProveedoresSinLeadTimeCaenAlProducto(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", intp(4))
	f.supplierPrice(t, "s1", "p1", nil)

	est, err := f.estimator.Estimate(f.ctx, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, day(4), est.Date)
}

func TestEstimate_ProductoSinLeadTimeOCeroUsaSieteDias(t *testing.T) {
	for name, lt := range map[string]*int{"nulo": nil, "cero": intp(0)} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.product(t, "p1", lt)

			est, err := f.estimator.Estimate(f.ctx, "p1", 1)
			require.NoError(t, err)
			assert.Equal(t, day(7), est.Date)
			assert.Equal(t, inventory.SourceDefault, est.Source)
		})
	}
}

func TestEstimate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.estimator.Estimate(f.ctx, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimate_ProductoInexistenteConPedidoCeroEsHoy(t *testing.T) {
	f := newFixture(t)

	est, err := f.estimator.Estimate(f.ctx, "no-existe", 0)
	require.NoError(t, err)
	assert.Equal(t, day(0), est.Date)
	assert.Equal(t, 0, est.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propagación de errores
// ──────────────────────────────────────────────────────────────────────────────

var errStorage = errors.New("storage caído")

type failingStock struct{}

func (failingStock) CurrentStock(context.Context, string) (int, error) { return 0, errStorage }

type zeroStock struct{}

func (zeroStock) CurrentStock(context.Context, string) (int, error) { return 0, nil }

type failingLeadTimes struct{}

func (failingLeadTimes) ListLeadTimesByProduct(context.Context, string) ([]*int, error) {
	return nil, errStorage
}

type noLeadTimes struct{}

func (noLeadTimes) ListLeadTimesByProduct(context.Context, string) ([]*int, error) { return nil, nil }

type failingProducts struct{}

func (failingProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errStorage
}

func TestEstimate_PropagaErroresDeAcceso(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		est  *appinventory.DeliveryEstimator
	}{
		{"stock", appinventory.NewDeliveryEstimator(failingStock{}, noLeadTimes{}, failingProducts{}, nil)},
		{"lead times", appinventory.NewDeliveryEstimator(zeroStock{}, failingLeadTimes{}, failingProducts{}, nil)},
		{"producto", appinventory.NewDeliveryEstimator(zeroStock{}, noLeadTimes{}, failingProducts{}, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := tt.est.WithClock(clock).Estimate(ctx, "p1", 1)
			assert.ErrorIs(t, err, errStorage)
			assert.Nil(t, est)
		})
	}
}

func TestEstimateMessage(t *testing.T) {
	assert.Equal(t, "En stock (7), entrega inmediata",
		appinventory.EstimateMessage(&inventory.Estimate{Date: day(0), Stock: 7, Source: inventory.SourceStock}))
	assert.Equal(t, "Stock actual 2. Fecha estimada llegada: 2026-03-17",
		appinventory.EstimateMessage(&inventory.Estimate{Date: day(7), Stock: 2, LeadTimeDays: 7, Source: inventory.SourceDefault}))
}

func TestToDeliveryEstimateResponse(t *testing.T) {
	out := appinventory.ToDeliveryEstimateResponse("p1", 3, &inventory.Estimate{Date: day(8), Stock: 1, LeadTimeDays: 8, Source: inventory.SourceSuppliers})
	assert.Equal(t, "2026-03-18", out.Date)
	assert.False(t, out.Immediate)
	assert.Equal(t, 8, out.LeadTimeDays)
	assert.Equal(t, "suppliers", out.Source)
	assert.Equal(t, 3, out.Requested)
}

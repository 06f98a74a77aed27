package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/application/usecase"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/memory"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ValoresPorDefecto(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: " FIL-01 ", Name: " Filtro "})
	require.NoError(t, err)
	assert.Equal(t, "FIL-01", out.Code)
	assert.Equal(t, "Filtro", out.Name)
	assert.Equal(t, 0, out.MinStock)
	require.NotNil(t, out.LeadTimeDays)
	assert.Equal(t, 7, *out.LeadTimeDays)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "A1", Name: "Uno"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "A1", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Invalido(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "  ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "B", Name: "x", MinStock: intp(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_ParcialYCodigoInmutable(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{Code: "A1", Name: "Uno", Unit: "caja"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strp("Uno bis"), LeadTimeDays: intp(0)})
	require.NoError(t, err)
	assert.Equal(t, "Uno bis", updated.Name)
	assert.Equal(t, "caja", updated.Unit)
	assert.Equal(t, "A1", updated.Code)
	assert.Equal(t, 0, *updated.LeadTimeDays)

	_, err = uc.Update(ctx, uuid.NewString(), dto.UpdateProductRequest{Name: strp("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_PaginadoPorNombre(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()
	for _, n := range []string{"Zapata", "Aceite", "Bujía"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Code: n, Name: n})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Aceite", out.Items[0].Name)
	assert.Equal(t, "Bujía", out.Items[1].Name)

	rest, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, "Zapata", rest.Items[0].Name)
}

func TestProductDelete_ConMovimientosEsConflicto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "A1", Name: "Uno"})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(ctx, &entity.InventoryMovement{ID: "m1", ProductID: p.ID, Delta: entity.In(1), Date: time.Now()}))

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrConflict)

	_, err = uc.GetByID(ctx, p.ID)
	assert.NoError(t, err, "el producto sigue existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores y precios
// ──────────────────────────────────────────────────────────────────────────────

type supplierFixture struct {
	ctx      context.Context
	uc       *usecase.SupplierUseCase
	supplier *dto.SupplierResponse
	product  *dto.ProductResponse
}

func newSupplierFixture(t *testing.T) *supplierFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.Prices(), store.Products(), "BOB")
	s, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Repuestos Sur"})
	require.NoError(t, err)
	p, err := usecase.NewProductUseCase(store.Products()).Create(ctx, dto.CreateProductRequest{Code: "A1", Name: "Aceite"})
	require.NoError(t, err)
	return &supplierFixture{ctx: ctx, uc: uc, supplier: s, product: p}
}

func TestSupplierCreate_LeadTimePorDefecto(t *testing.T) {
	f := newSupplierFixture(t)
	require.NotNil(t, f.supplier.LeadTimeDays)
	assert.Equal(t, 7, *f.supplier.LeadTimeDays)

	_, err := f.uc.Create(f.ctx, dto.CreateSupplierRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPrice_MonedaPorDefectoYRedondeo(t *testing.T) {
	f := newSupplierFixture(t)

	out, err := f.uc.RecordPrice(f.ctx, f.supplier.ID, dto.RecordPriceRequest{
		ProductID: f.product.ID, Price: decimal.RequireFromString("12.345"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BOB", out.Currency)
	assert.True(t, decimal.RequireFromString("12.35").Equal(out.Price), "se guarda con 2 decimales")
	assert.Equal(t, "Aceite", out.ProductName)
	assert.Equal(t, "Repuestos Sur", out.SupplierName)
}

func TestRecordPrice_RequiereProveedorYProducto(t *testing.T) {
	f := newSupplierFixture(t)

	_, err := f.uc.RecordPrice(f.ctx, uuid.NewString(), dto.RecordPriceRequest{ProductID: f.product.ID, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.RecordPrice(f.ctx, f.supplier.ID, dto.RecordPriceRequest{ProductID: uuid.NewString(), Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordPrice_Invalido(t *testing.T) {
	f := newSupplierFixture(t)

	_, err := f.uc.RecordPrice(f.ctx, f.supplier.ID, dto.RecordPriceRequest{ProductID: f.product.ID, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordPrice(f.ctx, f.supplier.ID, dto.RecordPriceRequest{ProductID: f.product.ID, Price: decimal.NewFromInt(1), Currency: "US"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPrices_UltimosCinco(t *testing.T) {
	f := newSupplierFixture(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		date := base.AddDate(0, 0, i)
		_, err := f.uc.RecordPrice(f.ctx, f.supplier.ID, dto.RecordPriceRequest{
			ProductID: f.product.ID, Price: decimal.NewFromInt(int64(10 + i)), Currency: "usd", Date: &date,
		})
		require.NoError(t, err)
	}

	prices, err := f.uc.ListPrices(f.ctx, f.supplier.ID, 0)
	require.NoError(t, err)
	require.Len(t, prices, usecase.DefaultPriceHistory)
	assert.True(t, decimal.NewFromInt(16).Equal(prices[0].Price), "más reciente primero")
	assert.Equal(t, "USD", prices[0].Currency)

	byProduct, err := f.uc.ListProductPrices(f.ctx, f.product.ID, 2)
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros
// ──────────────────────────────────────────────────────────────────────────────

func TestVehicleCreate_PlacaUnicaEnMayusculas(t *testing.T) {
	uc := usecase.NewVehicleUseCase(memory.NewStore().Vehicles())
	ctx := context.Background()

	v, err := uc.Create(ctx, dto.CreateVehicleRequest{Plate: " 1234abc ", Owner: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "1234ABC", v.Plate)

	_, err = uc.Create(ctx, dto.CreateVehicleRequest{Plate: "1234ABC"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTechnicianList_PorNombre(t *testing.T) {
	uc := usecase.NewTechnicianUseCase(memory.NewStore().Technicians())
	ctx := context.Background()
	for _, n := range []string{"Pedro", "Ana"} {
		_, err := uc.Create(ctx, dto.CreateTechnicianRequest{Name: n})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)

	_, err = uc.Create(ctx, dto.CreateTechnicianRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomer_CrearListarEliminar(t *testing.T) {
	uc := usecase.NewCustomerUseCase(memory.NewStore().Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Transportes Illimani", Phone: "70000000"})
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, c.ID))
	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrNotFound)
}

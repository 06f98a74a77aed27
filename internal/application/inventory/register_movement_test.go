package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/memory"
)

func newRegisterFixture(t *testing.T) (*memory.Store, *appinventory.RegisterMovementUseCase, *countingMetrics) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Code: "FIL-01", Name: "Filtro de aceite"}))
	require.NoError(t, store.Vehicles().Create(ctx, &entity.Vehicle{ID: "v1", Plate: "1234ABC"}))
	require.NoError(t, store.Technicians().Create(ctx, &entity.Technician{ID: "t1", Name: "Juan"}))
	m := newCountingMetrics()
	uc := appinventory.NewRegisterMovementUseCase(store.TxRunner(), m).WithClock(clock)
	return store, uc, m
}

func TestRegisterMovement_EntradaYSalidaActualizanStock(t *testing.T) {
	store, uc, m := newRegisterFixture(t)
	ctx := context.Background()
	vehicle, technician := "v1", "t1"

	in, err := uc.RegisterMovement(ctx, appinventory.MovementInput{UserID: "u1", ProductID: "p1", Type: "IN", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.In(10), in.Delta)
	assert.Equal(t, fixedNow, in.Date)
	assert.Equal(t, "Filtro de aceite", in.ProductName)

	out, err := uc.RegisterMovement(ctx, appinventory.MovementInput{
		UserID: "u1", ProductID: "p1", Type: "out", Quantity: 4, VehicleID: &vehicle, TechnicianID: &technician,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Out(4), out.Delta)
	assert.Equal(t, "1234ABC", out.VehiclePlate)
	assert.Equal(t, "Juan", out.TechnicianName)

	stock, err := appinventory.NewLedgerReader(store.Movements()).CurrentStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, stock)
	assert.Equal(t, 1, m.movements["IN"])
	assert.Equal(t, 1, m.movements["OUT"])
}

func TestRegisterMovement_SalidaSinStockSePermite(t *testing.T) {
	store, uc, _ := newRegisterFixture(t)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: "p1", Type: "OUT", Quantity: 3})
	require.NoError(t, err)

	stock, err := appinventory.NewLedgerReader(store.Movements()).CurrentStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, -3, stock)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	missing := "no-existe"
	blank := "  "
	tests := []struct {
		name  string
		input appinventory.MovementInput
		want  error
	}{
		{"cantidad cero", appinventory.MovementInput{ProductID: "p1", Type: "IN", Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", appinventory.MovementInput{ProductID: "p1", Type: "OUT", Quantity: -1}, domain.ErrInvalidInput},
		{"tipo desconocido", appinventory.MovementInput{ProductID: "p1", Type: "TRANSFER", Quantity: 1}, domain.ErrInvalidInput},
		{"sin producto", appinventory.MovementInput{Type: "IN", Quantity: 1}, domain.ErrInvalidInput},
		{"producto inexistente", appinventory.MovementInput{ProductID: "zz", Type: "IN", Quantity: 1}, domain.ErrNotFound},
		{"vehículo inexistente", appinventory.MovementInput{ProductID: "p1", Type: "OUT", Quantity: 1, VehicleID: &missing}, domain.ErrNotFound},
		{"técnico inexistente", appinventory.MovementInput{ProductID: "p1", Type: "OUT", Quantity: 1, TechnicianID: &missing}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc, m := newRegisterFixture(t)
			_, err := uc.RegisterMovement(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)

			totals, err := store.Movements().SumByProduct(context.Background(), "p1")
			require.NoError(t, err)
			assert.Zero(t, totals.In+totals.Out, "no debe quedar nada en el ledger")
			assert.Empty(t, m.movements)
		})
	}

	t.Run("vehículo en blanco se ignora", func(t *testing.T) {
		_, uc, _ := newRegisterFixture(t)
		mov, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{ProductID: "p1", Type: "IN", Quantity: 1, VehicleID: &blank})
		require.NoError(t, err)
		assert.Nil(t, mov.VehicleID)
	})
}

func TestRegisterMovementFromRequest_MapeaDTO(t *testing.T) {
	_, uc, _ := newRegisterFixture(t)

	mov, err := uc.RegisterMovementFromRequest(context.Background(), "u9", dto.RegisterMovementRequest{
		ProductID: "p1", Type: "IN", Quantity: 2, Reference: " OC-15 ", Note: "compra",
	})
	require.NoError(t, err)

	resp := appinventory.ToMovementResponse(mov)
	assert.Equal(t, "IN", resp.Type)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, "OC-15", resp.Reference)
	assert.Equal(t, "u9", resp.CreatedBy)
}

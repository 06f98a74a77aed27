package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-inventario/internal/application/analytics"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/infrastructure/memory"
)

func TestGetSummary_DiaYMes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Code: "A", Name: "Aceite", MinStock: 5}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", Code: "B", Name: "Bujía", MinStock: 1}))

	moves := []struct {
		delta entity.Delta
		date  time.Time
	}{
		{entity.In(20), time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)}, // mes anterior
		{entity.In(4), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{entity.Out(3), time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)},
		{entity.In(2), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{entity.Out(1), time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)},
	}
	for _, m := range moves {
		require.NoError(t, store.Movements().Create(ctx, &entity.InventoryMovement{
			ID: uuid.NewString(), ProductID: "p2", Delta: m.delta, Date: m.date,
		}))
	}

	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements()).
		WithClock(func() time.Time { return now })

	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.ProductCount)
	assert.Equal(t, 1, out.LowStockCount, "aceite sin stock")
	assert.Equal(t, 2, out.TodayIn)
	assert.Equal(t, 1, out.TodayOut)
	assert.Equal(t, 6, out.MonthIn)
	assert.Equal(t, 4, out.MonthOut)
	assert.Equal(t, "Marzo 2026", out.DateLabel)
}

func TestGetSummary_SinDatos(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements())

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.ProductCount)
	assert.Zero(t, out.MonthIn)
}

package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// StockLevel producto con su stock derivado del ledger.
type StockLevel struct {
	Product entity.Product
	Stock   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Delete devuelve domain.ErrConflict si el producto tiene movimientos o precios registrados.
	Delete(ctx context.Context, id string) error

	// ListStockLevels devuelve todos los productos con su stock (SUM de IN menos SUM de OUT), por nombre.
	ListStockLevels(ctx context.Context) ([]StockLevel, error)
}

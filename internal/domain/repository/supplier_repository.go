package repository

import (
	"context"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}

// SupplierPriceRepository historial de precios (solo inserción y lectura).
type SupplierPriceRepository interface {
	Create(ctx context.Context, price *entity.SupplierPrice) error
	// ListBySupplier últimos precios del proveedor (fecha descendente) con nombre de producto.
	ListBySupplier(ctx context.Context, supplierID string, limit int) ([]*entity.SupplierPrice, error)
	// ListByProduct últimos precios del producto (fecha descendente) con nombre de proveedor.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.SupplierPrice, error)
	// ListLeadTimesByProduct devuelve el lead time del proveedor de cada fila de precio del producto.
	// Una fila por precio (sin deduplicar proveedores); nil si el proveedor no tiene lead time.
	ListLeadTimesByProduct(ctx context.Context, productID string) ([]*int, error)
}

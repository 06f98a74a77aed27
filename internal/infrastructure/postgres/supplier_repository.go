package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var (
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.SupplierPriceRepository = (*SupplierPriceRepo)(nil)
)

// SupplierRepo persistencia de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, name, contact, lead_time_days, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Contact, s.LeadTimeDays, s.Note, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor; (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, name, contact, lead_time_days, note, created_at, updated_at
		FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Contact, &s.LeadTimeDays, &s.Note, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores por nombre.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, contact, lead_time_days, note, created_at, updated_at
		FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.LeadTimeDays, &s.Note, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SupplierPriceRepo historial de precios. Solo INSERT y SELECT.
type SupplierPriceRepo struct {
	q Querier
}

// NewSupplierPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierPriceRepository(q Querier) *SupplierPriceRepo {
	return &SupplierPriceRepo{q: q}
}

// Create agrega un precio al historial. Proveedor o producto inexistente -> domain.ErrNotFound.
func (r *SupplierPriceRepo) Create(ctx context.Context, p *entity.SupplierPrice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_prices (id, supplier_id, product_id, price, currency, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.SupplierID, p.ProductID, p.Price, p.Currency, p.Date,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier price: %w", err)
	}
	return nil
}

const priceSelect = `
	SELECT sp.id, sp.supplier_id, sp.product_id, sp.price, sp.currency, sp.date, p.name, s.name
	FROM supplier_prices sp
	JOIN products p ON p.id = sp.product_id
	JOIN suppliers s ON s.id = sp.supplier_id`

// ListBySupplier últimos precios del proveedor.
func (r *SupplierPriceRepo) ListBySupplier(ctx context.Context, supplierID string, limit int) ([]*entity.SupplierPrice, error) {
	rows, err := r.q.Query(ctx, priceSelect+` WHERE sp.supplier_id = $1 ORDER BY sp.date DESC LIMIT $2`, supplierID, limit)
	if err != nil {
		return nil, fmt.Errorf("list prices by supplier: %w", err)
	}
	return collectPrices(rows)
}

// ListByProduct últimos precios del producto (todos los proveedores).
func (r *SupplierPriceRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.SupplierPrice, error) {
	rows, err := r.q.Query(ctx, priceSelect+` WHERE sp.product_id = $1 ORDER BY sp.date DESC LIMIT $2`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list prices by product: %w", err)
	}
	return collectPrices(rows)
}

// ListLeadTimesByProduct lead time del proveedor por cada fila de precio del producto.
// Un proveedor con varios precios aparece varias veces; los NULL se devuelven como nil.
func (r *SupplierPriceRepo) ListLeadTimesByProduct(ctx context.Context, productID string) ([]*int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.lead_time_days
		FROM supplier_prices sp
		JOIN suppliers s ON s.id = sp.supplier_id
		WHERE sp.product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list supplier lead times: %w", err)
	}
	defer rows.Close()
	var out []*int
	for rows.Next() {
		var days *int
		if err := rows.Scan(&days); err != nil {
			return nil, fmt.Errorf("scan lead time: %w", err)
		}
		out = append(out, days)
	}
	return out, rows.Err()
}

func collectPrices(rows pgx.Rows) ([]*entity.SupplierPrice, error) {
	defer rows.Close()
	var list []*entity.SupplierPrice
	for rows.Next() {
		var p entity.SupplierPrice
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.ProductID, &p.Price, &p.Currency, &p.Date,
			&p.ProductName, &p.SupplierName); err != nil {
			return nil, fmt.Errorf("scan supplier price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

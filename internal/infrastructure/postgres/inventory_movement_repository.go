package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// El ledger es append-only: no hay UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.Delta == nil {
		return fmt.Errorf("create inventory movement: %w", domain.ErrInvalidInput)
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, type, quantity, date, vehicle_id, technician_id, reference, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Delta.Type(), movement.Delta.Quantity(), movement.Date,
		movement.VehicleID, movement.TechnicianID, movement.Reference, movement.Note, nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// SumByProduct suma entradas y salidas del producto. Sin movimientos -> {0, 0}.
func (r *InventoryMovementRepo) SumByProduct(ctx context.Context, productID string) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM inventory_movements WHERE product_id = $1`, productID).Scan(&t.In, &t.Out)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("sum movements: %w", err)
	}
	return t, nil
}

// SumByPeriod suma entradas y salidas de todos los productos en [from, to).
func (r *InventoryMovementRepo) SumByPeriod(ctx context.Context, from, to time.Time) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM inventory_movements WHERE date >= $1 AND date < $2`, from, to).Scan(&t.In, &t.Out)
	if err != nil {
		return repository.MovementTotals{}, fmt.Errorf("sum movements by period: %w", err)
	}
	return t, nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.type, m.quantity, m.date, m.vehicle_id, m.technician_id,
	       m.reference, m.note, m.created_by, p.name, COALESCE(v.plate, ''), COALESCE(t.name, '')
	FROM inventory_movements m
	JOIN products p ON p.id = m.product_id
	LEFT JOIN vehicles v ON v.id = m.vehicle_id
	LEFT JOIN technicians t ON t.id = m.technician_id`

// ListRecent lista los últimos movimientos, más recientes primero.
func (r *InventoryMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, movementSelect+` ORDER BY m.date DESC, m.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	return collectMovements(rows)
}

// ListByProduct lista el kardex de un producto, más recientes primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx,
		movementSelect+` WHERE m.product_id = $1 ORDER BY m.date DESC, m.created_at DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var (
			m         entity.InventoryMovement
			typ       string
			quantity  int
			createdBy *string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &quantity, &m.Date, &m.VehicleID, &m.TechnicianID,
			&m.Reference, &m.Note, &createdBy, &m.ProductName, &m.VehiclePlate, &m.TechnicianName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		delta, err := entity.NewDelta(typ, quantity)
		if err != nil {
			return nil, fmt.Errorf("movement %s: %w", m.ID, err)
		}
		m.Delta = delta
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

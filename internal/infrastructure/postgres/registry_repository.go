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
	_ repository.VehicleRepository    = (*VehicleRepo)(nil)
	_ repository.TechnicianRepository = (*TechnicianRepo)(nil)
)

// VehicleRepo persistencia de vehículos.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo. Placa repetida -> domain.ErrDuplicate.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO vehicles (id, plate, owner, created_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.Plate, v.Owner, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo; (nil, nil) si no existe.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(ctx, `SELECT id, plate, owner, created_at FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Plate, &v.Owner, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// List lista vehículos por placa.
func (r *VehicleRepo) List(ctx context.Context) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, `SELECT id, plate, owner, created_at FROM vehicles ORDER BY plate`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Owner, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// TechnicianRepo persistencia de técnicos.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

// Create persiste un técnico.
func (r *TechnicianRepo) Create(ctx context.Context, t *entity.Technician) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO technicians (id, name, note, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Note, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico; (nil, nil) si no existe.
func (r *TechnicianRepo) GetByID(ctx context.Context, id string) (*entity.Technician, error) {
	var t entity.Technician
	err := r.q.QueryRow(ctx, `SELECT id, name, note, created_at FROM technicians WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Note, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return &t, nil
}

// List lista técnicos por nombre.
func (r *TechnicianRepo) List(ctx context.Context) ([]*entity.Technician, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, note, created_at FROM technicians ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()
	var list []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

var (
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
	_ repository.SupplierRepository          = (*SupplierRepo)(nil)
	_ repository.SupplierPriceRepository     = (*SupplierPriceRepo)(nil)
	_ repository.VehicleRepository           = (*VehicleRepo)(nil)
	_ repository.TechnicianRepository        = (*TechnicianRepo)(nil)
	_ repository.CustomerRepository          = (*CustomerRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
)

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	cp.LeadTimeDays = intPtr(p.LeadTimeDays)
	r.s.products[p.ID] = cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p.LeadTimeDays = intPtr(p.LeadTimeDays)
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Code == code {
			p.LeadTimeDays = intPtr(p.LeadTimeDays)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Code = existing.Code
	cp.CreatedAt = existing.CreatedAt
	cp.LeadTimeDays = intPtr(p.LeadTimeDays)
	r.s.products[p.ID] = cp
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sorted := r.sortedLocked()
	out := make([]*entity.Product, 0, len(sorted))
	for _, p := range page(sorted, limit, offset) {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

// Delete falla con ErrConflict si hay movimientos o precios del producto (FK RESTRICT).
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, sp := range r.s.prices {
		if sp.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) ListStockLevels(_ context.Context) ([]repository.StockLevel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stock := make(map[string]int, len(r.s.products))
	for _, m := range r.s.movements {
		stock[m.ProductID] += m.Delta.Signed()
	}
	sorted := r.sortedLocked()
	out := make([]repository.StockLevel, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, repository.StockLevel{Product: p, Stock: stock[p.ID]})
	}
	return out, nil
}

func (r *ProductRepo) sortedLocked() []entity.Product {
	out := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p.LeadTimeDays = intPtr(p.LeadTimeDays)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// ── Movements ─────────────────────────────────────────────────────────────────

// MovementRepo ledger en memoria: solo inserción.
type MovementRepo struct{ s *Store }

// Create exige que el producto y las referencias opcionales existan (FK).
func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.Delta == nil {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if m.VehicleID != nil {
		if _, ok := r.s.vehicles[*m.VehicleID]; !ok {
			return domain.ErrNotFound
		}
	}
	if m.TechnicianID != nil {
		if _, ok := r.s.technicians[*m.TechnicianID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) SumByProduct(_ context.Context, productID string) (repository.MovementTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			addTotals(&t, m.Delta)
		}
	}
	return t, nil
}

// SumByPeriod suma en [from, to).
func (r *MovementRepo) SumByPeriod(_ context.Context, from, to time.Time) (repository.MovementTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var t repository.MovementTotals
	for _, m := range r.s.movements {
		if !m.Date.Before(from) && m.Date.Before(to) {
			addTotals(&t, m.Delta)
		}
	}
	return t, nil
}

func (r *MovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.InventoryMovement, error) {
	return r.list(func(entity.InventoryMovement) bool { return true }, limit, 0), nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.list(func(m entity.InventoryMovement) bool { return m.ProductID == productID }, limit, offset), nil
}

func (r *MovementRepo) list(keep func(entity.InventoryMovement) bool, limit, offset int) []*entity.InventoryMovement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	selected := make([]entity.InventoryMovement, 0)
	// más recientes primero; a igual fecha, el último insertado primero
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if !keep(m) {
			continue
		}
		m.ProductName = r.s.products[m.ProductID].Name
		if m.VehicleID != nil {
			m.VehiclePlate = r.s.vehicles[*m.VehicleID].Plate
		}
		if m.TechnicianID != nil {
			m.TechnicianName = r.s.technicians[*m.TechnicianID].Name
		}
		selected = append(selected, m)
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Date.After(selected[j].Date) })
	out := make([]*entity.InventoryMovement, 0, len(selected))
	for _, m := range page(selected, limit, offset) {
		m := m
		out = append(out, &m)
	}
	return out
}

func addTotals(t *repository.MovementTotals, d entity.Delta) {
	switch d.(type) {
	case entity.In:
		t.In += d.Quantity()
	case entity.Out:
		t.Out += d.Quantity()
	}
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sup
	cp.LeadTimeDays = intPtr(sup.LeadTimeDays)
	r.s.suppliers[sup.ID] = cp
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	sup.LeadTimeDays = intPtr(sup.LeadTimeDays)
	return &sup, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		sup := sup
		sup.LeadTimeDays = intPtr(sup.LeadTimeDays)
		out = append(out, &sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SupplierPriceRepo historial de precios en memoria.
type SupplierPriceRepo struct{ s *Store }

func (r *SupplierPriceRepo) Create(_ context.Context, p *entity.SupplierPrice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[p.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.s.prices = append(r.s.prices, *p)
	return nil
}

func (r *SupplierPriceRepo) ListBySupplier(_ context.Context, supplierID string, limit int) ([]*entity.SupplierPrice, error) {
	return r.list(func(p entity.SupplierPrice) bool { return p.SupplierID == supplierID }, limit), nil
}

func (r *SupplierPriceRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.SupplierPrice, error) {
	return r.list(func(p entity.SupplierPrice) bool { return p.ProductID == productID }, limit), nil
}

// ListLeadTimesByProduct una entrada por fila de precio; nil si el proveedor no tiene lead time.
func (r *SupplierPriceRepo) ListLeadTimesByProduct(_ context.Context, productID string) ([]*int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*int, 0)
	for _, p := range r.s.prices {
		if p.ProductID != productID {
			continue
		}
		sup, ok := r.s.suppliers[p.SupplierID]
		if !ok {
			continue
		}
		out = append(out, intPtr(sup.LeadTimeDays))
	}
	return out, nil
}

func (r *SupplierPriceRepo) list(keep func(entity.SupplierPrice) bool, limit int) []*entity.SupplierPrice {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	selected := make([]entity.SupplierPrice, 0)
	for i := len(r.s.prices) - 1; i >= 0; i-- {
		p := r.s.prices[i]
		if !keep(p) {
			continue
		}
		p.ProductName = r.s.products[p.ProductID].Name
		p.SupplierName = r.s.suppliers[p.SupplierID].Name
		selected = append(selected, p)
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].Date.After(selected[j].Date) })
	out := make([]*entity.SupplierPrice, 0, len(selected))
	for _, p := range page(selected, limit, 0) {
		p := p
		out = append(out, &p)
	}
	return out
}

// ── Registros ─────────────────────────────────────────────────────────────────

// VehicleRepo vehículos en memoria; la placa es única.
type VehicleRepo struct{ s *Store }

func (r *VehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.vehicles {
		if strings.EqualFold(existing.Plate, v.Plate) {
			return domain.ErrDuplicate
		}
	}
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VehicleRepo) List(_ context.Context) ([]*entity.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

// TechnicianRepo técnicos en memoria.
type TechnicianRepo struct{ s *Store }

func (r *TechnicianRepo) Create(_ context.Context, t *entity.Technician) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.technicians[t.ID] = *t
	return nil
}

func (r *TechnicianRepo) GetByID(_ context.Context, id string) (*entity.Technician, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.technicians[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TechnicianRepo) List(_ context.Context) ([]*entity.Technician, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Technician, 0, len(r.s.technicians))
	for _, t := range r.s.technicians {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	out := make([]*entity.Customer, 0, len(all))
	for _, c := range page(all, limit, offset) {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria; el email es único sin distinguir mayúsculas.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	cp.Email = email
	r.s.users[u.ID] = cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// Package memory implementa los puertos de persistencia en memoria.
// Reproduce las reglas de la base (códigos únicos, claves foráneas, orden de listados)
// para probar casos de uso y handlers sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	products    map[string]entity.Product
	suppliers   map[string]entity.Supplier
	prices      []entity.SupplierPrice
	movements   []entity.InventoryMovement
	vehicles    map[string]entity.Vehicle
	technicians map[string]entity.Technician
	customers   map[string]entity.Customer
	users       map[string]entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]entity.Product),
		suppliers:   make(map[string]entity.Supplier),
		vehicles:    make(map[string]entity.Vehicle),
		technicians: make(map[string]entity.Technician),
		customers:   make(map[string]entity.Customer),
		users:       make(map[string]entity.User),
	}
}

// Repositorios atados al store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }
func (s *Store) Prices() *SupplierPriceRepo { return &SupplierPriceRepo{s: s} }
func (s *Store) Vehicles() *VehicleRepo { return &VehicleRepo{s: s} }
func (s *Store) Technicians() *TechnicianRepo { return &TechnicianRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// PutUser reemplaza un usuario existente (p. ej. para desactivarlo).
func (s *Store) PutUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
}

type snapshot struct {
	products    map[string]entity.Product
	suppliers   map[string]entity.Supplier
	prices      []entity.SupplierPrice
	movements   []entity.InventoryMovement
	vehicles    map[string]entity.Vehicle
	technicians map[string]entity.Technician
	customers   map[string]entity.Customer
	users       map[string]entity.User
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		products:    cloneMap(s.products),
		suppliers:   cloneMap(s.suppliers),
		prices:      append([]entity.SupplierPrice(nil), s.prices...),
		movements:   append([]entity.InventoryMovement(nil), s.movements...),
		vehicles:    cloneMap(s.vehicles),
		technicians: cloneMap(s.technicians),
		customers:   cloneMap(s.customers),
		users:       cloneMap(s.users),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.prices = snap.prices
	s.movements = snap.movements
	s.vehicles = snap.vehicles
	s.technicians = snap.technicians
	s.customers = snap.customers
	s.users = snap.users
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner simula una transacción: si fn falla se restaura el estado previo.
// No aísla de escrituras concurrentes.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios del store.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	vehicleRepo repository.VehicleRepository,
	technicianRepo repository.TechnicianRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(t.s.Movements(), t.s.Products(), t.s.Vehicles(), t.s.Technicians()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func intPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

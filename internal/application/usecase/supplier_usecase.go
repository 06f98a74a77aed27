package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/internal/domain/entity"
	"github.com/jhoicas/taller-inventario/internal/domain/repository"
)

// DefaultPriceHistory cantidad de precios que devuelve ListPrices por defecto.
const DefaultPriceHistory = 5

// SupplierUseCase proveedores e historial de precios.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	priceRepo    repository.SupplierPriceRepository
	productRepo  repository.ProductRepository
	currency     string
}

// NewSupplierUseCase construye el caso de uso. currency es la moneda por defecto de los precios.
func NewSupplierUseCase(
	supplierRepo repository.SupplierRepository,
	priceRepo repository.SupplierPriceRepository,
	productRepo repository.ProductRepository,
	currency string,
) *SupplierUseCase {
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	return &SupplierUseCase{
		supplierRepo: supplierRepo,
		priceRepo:    priceRepo,
		productRepo:  productRepo,
		currency:     currency,
	}
}

// Create registra un proveedor. LeadTimeDays por defecto 7.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	leadTime := entity.DefaultLeadTimeDays
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		leadTime = *in.LeadTimeDays
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         name,
		Contact:      strings.TrimSpace(in.Contact),
		LeadTimeDays: &leadTime,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// RecordPrice agrega un precio al historial del proveedor. El historial nunca se edita.
func (uc *SupplierUseCase) RecordPrice(ctx context.Context, supplierID string, in dto.RecordPriceRequest) (*dto.SupplierPriceResponse, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = uc.currency
	}
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, currency)
	}
	date := time.Now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	price := &entity.SupplierPrice{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		ProductID:    product.ID,
		Price:        in.Price.Round(2),
		Currency:     currency,
		Date:         date,
		ProductName:  product.Name,
		SupplierName: supplier.Name,
	}
	if err := uc.priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// ListPrices últimos precios del proveedor (limit <= 0 usa 5).
func (uc *SupplierUseCase) ListPrices(ctx context.Context, supplierID string, limit int) ([]dto.SupplierPriceResponse, error) {
	if limit <= 0 {
		limit = DefaultPriceHistory
	}
	list, err := uc.priceRepo.ListBySupplier(ctx, supplierID, limit)
	if err != nil {
		return nil, err
	}
	return toPriceResponses(list), nil
}

// ListProductPrices últimos precios de un producto entre todos los proveedores.
func (uc *SupplierUseCase) ListProductPrices(ctx context.Context, productID string, limit int) ([]dto.SupplierPriceResponse, error) {
	if limit <= 0 {
		limit = DefaultPriceHistory
	}
	list, err := uc.priceRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	return toPriceResponses(list), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Contact:      s.Contact,
		LeadTimeDays: s.LeadTimeDays,
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}

func toPriceResponse(p *entity.SupplierPrice) *dto.SupplierPriceResponse {
	return &dto.SupplierPriceResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		Price:        p.Price,
		Currency:     p.Currency,
		Date:         p.Date,
	}
}

func toPriceResponses(list []*entity.SupplierPrice) []dto.SupplierPriceResponse {
	out := make([]dto.SupplierPriceResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPriceResponse(p))
	}
	return out
}

package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/taller-inventario/internal/domain/entity"
)

// Origen del lead time usado en una estimación.
const (
	SourceStock     = "stock"     // entrega inmediata
	SourceSuppliers = "suppliers" // promedio de proveedores
	SourceProduct   = "product"   // lead time por defecto del producto
	SourceDefault   = "default"   // 7 días fijos
)

// Estimate resultado de la estimación de entrega.
type Estimate struct {
	Date         time.Time
	Stock        int
	LeadTimeDays int
	Source       string
}

// Immediate indica si la entrega es inmediata (sin lead time).
func (e Estimate) Immediate() bool { return e.Source == SourceStock }

// Today trunca t a la medianoche de su zona horaria.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AverageLeadTime promedia los lead times no nulos y redondea al día más cercano (mitad al par).
// Cada fila cuenta: dos precios del mismo proveedor pesan dos veces.
// ok es false si no hay ningún valor.
func AverageLeadTime(leadTimes []*int) (days int, ok bool) {
	sum, n := 0, 0
	for _, lt := range leadTimes {
		if lt == nil {
			continue
		}
		sum += *lt
		n++
	}
	if n == 0 {
		return 0, false
	}
	return int(math.RoundToEven(float64(sum) / float64(n))), true
}

// ProductLeadTime devuelve el lead time por defecto del producto; nil o 0 equivale a 7 días.
func ProductLeadTime(p *entity.Product) (days int, source string) {
	if p == nil || p.LeadTimeDays == nil || *p.LeadTimeDays == 0 {
		return entity.DefaultLeadTimeDays, SourceDefault
	}
	return *p.LeadTimeDays, SourceProduct
}

// EstimateDelivery aplica la política de entrega:
//  1. stock >= requested: hoy.
//  2. promedio de lead times de proveedores si existe alguno.
//  3. lead time del producto, o 7 días.
//
// product solo se consulta en el paso 3.
func EstimateDelivery(now time.Time, stock, requested int, supplierLeadTimes []*int, product *entity.Product) Estimate {
	today := Today(now)
	if stock >= requested {
		return Estimate{Date: today, Stock: stock, Source: SourceStock}
	}
	if days, ok := AverageLeadTime(supplierLeadTimes); ok {
		return Estimate{Date: today.AddDate(0, 0, days), Stock: stock, LeadTimeDays: days, Source: SourceSuppliers}
	}
	days, source := ProductLeadTime(product)
	return Estimate{Date: today.AddDate(0, 0, days), Stock: stock, LeadTimeDays: days, Source: source}
}

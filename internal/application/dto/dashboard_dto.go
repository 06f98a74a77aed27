package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ProductCount  int `json:"product_count"`
	LowStockCount int `json:"low_stock_count"` // stock <= min_stock

	// Movimientos del día actual (00:00 – 23:59)
	TodayIn  int `json:"today_in"`
	TodayOut int `json:"today_out"`

	// Movimientos del mes en curso (día 1 – hoy)
	MonthIn  int `json:"month_in"`
	MonthOut int `json:"month_out"`

	DateLabel string `json:"date_label"` // ej: "Marzo 2026"
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los collectors de la API del taller.
// Un *Metrics nil (o construido con registerer nil) es un no-op.
type Metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	movements  *prometheus.CounterVec
	estimates  *prometheus.CounterVec
	idempotent *prometheus.CounterVec
}

// New registra los collectors en el registerer indicado.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_http_requests_total",
			Help: "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taller_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_inventory_movements_total",
			Help: "Movimientos de inventario registrados por tipo.",
		}, []string{"type"}),
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_delivery_estimates_total",
			Help: "Estimaciones de entrega por fuente del plazo.",
		}, []string{"source"}),
		idempotent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_idempotency_total",
			Help: "Resultado del chequeo de Idempotency-Key.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requests, m.latency, m.movements, m.estimates, m.idempotent)
	return m
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(d.Seconds())
}

// IncMovement cuenta un movimiento IN/OUT registrado.
func (m *Metrics) IncMovement(movementType string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(movementType)).Inc()
}

// IncEstimate cuenta una estimación según la fuente del plazo (stock, suppliers, product, default).
func (m *Metrics) IncEstimate(source string) {
	if m == nil || m.estimates == nil {
		return
	}
	m.estimates.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncIdempotency cuenta hits, misses y conflictos del middleware de idempotencia.
func (m *Metrics) IncIdempotency(outcome string) {
	if m == nil || m.idempotent == nil {
		return
	}
	m.idempotent.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

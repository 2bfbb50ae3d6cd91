package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// SalesMetrics contadores e histogramas del flujo de ventas del salón.
type SalesMetrics struct {
	Checkouts    *prometheus.CounterVec
	SaleTotal    prometheus.Histogram
	Appointments *prometheus.CounterVec
}

// NewSalesMetrics registra los colectores en el registry por defecto.
// Checkouts se etiqueta por resultado: "ok", "stock_insuficiente", "carrito_vacio", etc.
func NewSalesMetrics() *SalesMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casabella",
		Name:      "checkouts_total",
		Help:      "Total de intentos de checkout por resultado.",
	}, []string{"result"})
	saleTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "casabella",
		Name:      "sale_total",
		Help:      "Distribución del total (con IVA) de las ventas confirmadas.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	appointments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "casabella",
		Name:      "appointment_transitions_total",
		Help:      "Transiciones de estado de citas.",
	}, []string{"to"})

	prometheus.MustRegister(checkouts, saleTotal, appointments)
	return &SalesMetrics{Checkouts: checkouts, SaleTotal: saleTotal, Appointments: appointments}
}

// ObserveSale registra el total de una venta confirmada, venga de un
// checkout o de una cita completada. El contador de checkouts lo
// incrementa cada caso de uso con su propio resultado.
func (m *SalesMetrics) ObserveSale(total decimal.Decimal) {
	f, _ := total.Float64()
	m.SaleTotal.Observe(f)
}

// Handler expone el registry por defecto (montar en /metrics vía adaptor).
func Handler() http.Handler {
	return promhttp.Handler()
}

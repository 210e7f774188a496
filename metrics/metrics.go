package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores propios de la API
type Metrics struct {
	Registry            *prometheus.Registry
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestLatency  *prometheus.HistogramVec
	PropiedadesCreadas  prometheus.Counter
	VistasRegistradas   prometheus.Counter
	ConsultasRecibidas  prometheus.Counter
	EventosNoPublicados prometheus.Counter
}

// New crea y registra las métricas en un registry propio
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requests HTTP por ruta, método y status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "Latencia de los requests HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PropiedadesCreadas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propiedades_creadas_total",
			Help:      "Total de propiedades publicadas.",
		}),
		VistasRegistradas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propiedades_vistas_total",
			Help:      "Total de lecturas de detalle de propiedades.",
		}),
		ConsultasRecibidas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consultas_recibidas_total",
			Help:      "Total de consultas recibidas.",
		}),
		EventosNoPublicados: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eventos_fallidos_total",
			Help:      "Eventos de propiedades que no se pudieron publicar.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		m.PropiedadesCreadas,
		m.VistasRegistradas,
		m.ConsultasRecibidas,
		m.EventosNoPublicados,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

// Handler expone /metrics con el registry propio
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

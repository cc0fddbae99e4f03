package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores do serviço. Todos os métodos aceitam receptor nil.
type Metrics struct {
	registry *prometheus.Registry

	regenerations *prometheus.CounterVec
	captures      *prometheus.CounterVec
	payments      *prometheus.CounterVec
	notifications *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": "api-faturamento"}

	m := &Metrics{
		registry: reg,
		regenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "faturamento_receivable_regenerations_total",
			Help:        "Regenerações de recebíveis por resultado.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "faturamento_snapshot_captures_total",
			Help:        "Capturas de snapshot mensal por resultado.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "faturamento_payments_total",
			Help:        "Pagamentos registrados (fatura ou comissão).",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "faturamento_notifications_total",
			Help:        "Notificações enviadas por canal e resultado.",
			ConstLabels: constLabels,
		}, []string{"channel", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "faturamento_http_request_duration_seconds",
			Help:        "Latência das requisições HTTP.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.regenerations,
		m.captures,
		m.payments,
		m.notifications,
		m.httpDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

func (m *Metrics) Regeneration(err error) {
	if m == nil {
		return
	}
	m.regenerations.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) Capture(err error) {
	if m == nil {
		return
	}
	m.captures.WithLabelValues(result(err)).Inc()
}

// Payment kind: invoice | payout
func (m *Metrics) Payment(kind string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(kind).Inc()
}

func (m *Metrics) Notification(channel string, err error) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, result(err)).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler expõe /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

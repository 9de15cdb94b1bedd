package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics - счетчики и гистограммы пересчета витрины.
// Используется собственный Registry, чтобы /metrics не тащил глобальное
// состояние из чужих пакетов.
type Metrics struct {
	Registry *prometheus.Registry

	RefreshTotal    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	RowsPublished   prometheus.Gauge
	ClientsWaiting  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_mart_refresh_total",
			Help: "Количество пересчетов витрины по статусу завершения.",
		}, []string{"status"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sla_mart_refresh_duration_seconds",
			Help:    "Длительность полного пересчета витрины.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		RowsPublished: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sla_mart_rows_published",
			Help: "Число строк, опубликованных последним успешным пересчетом.",
		}),
		ClientsWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sla_mart_clients_waiting",
			Help: "Число клиентов без ответа менеджера в последнем пересчете.",
		}),
	}

	m.Registry.MustRegister(
		m.RefreshTotal,
		m.RefreshDuration,
		m.RowsPublished,
		m.ClientsWaiting,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

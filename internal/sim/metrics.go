package sim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метрики симуляции в глобальном регистре Prometheus
var (
	ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "ticks_total",
		Help:      "Общее число обработанных тиков симуляции.",
	})

	editsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "edits_total",
		Help:      "Попытки редактирования по исходам (miss/removed/placed/blocked).",
	}, []string{"outcome"})

	worldBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "world_blocks",
		Help:      "Текущее число занятых ячеек мира.",
	})
)

func init() {
	prometheus.MustRegister(ticksTotal, editsTotal, worldBlocks)
}

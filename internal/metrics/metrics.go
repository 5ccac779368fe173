package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	KVOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_operations_total",
			Help: "Key-value store operations by backend, operation and result",
		},
		[]string{"backend", "op", "result"},
	)
	BoardMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_mutations_total",
			Help: "Board mutations applied through the board service",
		},
		[]string{"op"},
	)
	DragEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drag_events_total",
			Help: "Drag gesture events by kind (over, drop, cancel) and outcome",
		},
		[]string{"kind", "outcome"},
	)
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients",
			Help: "Currently connected websocket clients",
		},
	)
)

func init() {
	prometheus.MustRegister(KVOperations)
	prometheus.MustRegister(BoardMutations)
	prometheus.MustRegister(DragEvents)
	prometheus.MustRegister(WSClients)
}

func Result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ayodeji-m/kobowallet/internal/domain"
)

// Metrics holds the ledger's Prometheus metrics. It implements
// usecase.TransferMetrics.
type Metrics struct {
	TransfersTotal    *prometheus.CounterVec
	TransferDuration  prometheus.Histogram
	WalletsCreated    prometheus.Counter
	LedgerAlertsTotal prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kobowallet_transfers_total",
				Help: "Total transfers by terminal state",
			},
			[]string{"state"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kobowallet_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kobowallet_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		LedgerAlertsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kobowallet_ledger_alerts_total",
			Help: "Total inconsistent transfers requiring operator recovery",
		}),
	}
}

// RecordTransfer counts a transfer reaching a terminal state.
func (m *Metrics) RecordTransfer(state domain.TransferState) {
	m.TransfersTotal.WithLabelValues(string(state)).Inc()

	if state == domain.TransferInconsistent {
		m.LedgerAlertsTotal.Inc()
	}
}

// RecordWalletCreated counts a provisioned wallet.
func (m *Metrics) RecordWalletCreated() {
	m.WalletsCreated.Inc()
}

// ObserveTransferDuration records the latency of a transfer.
func (m *Metrics) ObserveTransferDuration(d time.Duration) {
	m.TransferDuration.Observe(d.Seconds())
}

// Package metrics exposes Prometheus collectors for pool operations.
package metrics

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the Prometheus metrics for the pool. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	operationDuration *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	swapVolume        *prometheus.CounterVec
	reserves          *prometheus.GaugeVec
	totalShares       prometheus.Gauge
	price             prometheus.Gauge
}

// New creates and registers the metrics for the pool.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amm_operation_duration_seconds",
			Help:    "Time taken to execute a pool operation, including asset transfers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amm_operations_total",
			Help: "Total number of pool operations, labeled by operation and result.",
		}, []string{"operation", "result"}),
		swapVolume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "amm_swap_volume_total",
			Help: "Cumulative swap input, labeled by input asset.",
		}, []string{"asset"}),
		reserves: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "amm_reserve",
			Help: "Current pool reserve, labeled by side.",
		}, []string{"side"}),
		totalShares: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amm_total_shares",
			Help: "Outstanding liquidity shares.",
		}),
		price: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amm_spot_price",
			Help: "Spot price of asset A in units of asset B.",
		}),
	}
	reg.MustRegister(m.operationDuration, m.operationsTotal, m.swapVolume, m.reserves, m.totalShares, m.price)
	return m
}

// ObserveOperation records the outcome and latency of one operation.
func (m *Metrics) ObserveOperation(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operationsTotal.WithLabelValues(op, result).Inc()
	m.operationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// AddSwapVolume adds amount to the swap volume of asset.
func (m *Metrics) AddSwapVolume(asset string, amount *big.Int) {
	if m == nil {
		return
	}
	m.swapVolume.WithLabelValues(asset).Add(toFloat(amount))
}

// SetState publishes the pool's reserves, share supply and scaled price.
// price is expected to carry 18 decimals.
func (m *Metrics) SetState(reserveA, reserveB, totalShares, price *big.Int) {
	if m == nil {
		return
	}
	m.reserves.WithLabelValues("A").Set(toFloat(reserveA))
	m.reserves.WithLabelValues("B").Set(toFloat(reserveB))
	m.totalShares.Set(toFloat(totalShares))
	p, _ := new(big.Float).Quo(new(big.Float).SetInt(price), big.NewFloat(1e18)).Float64()
	m.price.Set(p)
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

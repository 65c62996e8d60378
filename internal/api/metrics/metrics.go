// Package metrics defines the custom Prometheus metrics of the store API. It
// is the single source of truth for metric names, labels and help strings.
//
// Call Register once per registry before serving traffic.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "store"

// ── Sales metrics ─────────────────────────────────────────────────────────────

// SalesRecordedTotal counts sales that were committed to the ledger.
var SalesRecordedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sales recorded.",
	},
)

// SalesRejectedTotal counts sale attempts that did not produce a sale.
// Label:
//   - reason: "insufficient_stock", "unknown_product" or "invalid"
var SalesRejectedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_rejected_total",
		Help:      "Total number of sale attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// UnitsSoldTotal sums the quantities of recorded sales.
var UnitsSoldTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of product units sold.",
	},
)

// SaleDuration measures a sale request end-to-end, including the wait for
// the per-product worker.
// Label:
//   - outcome: "recorded", "insufficient_stock" or "error"
var SaleDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sale_duration_seconds",
		Help:      "Duration of sale recording from request to commit.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductChangesTotal counts catalog mutations.
// Label:
//   - op: "created", "updated" or "deleted"
var ProductChangesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_changes_total",
		Help:      "Total number of catalog mutations, by operation.",
	},
	[]string{"op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "wrong_credentials"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts successful logouts.
var TokensRevokedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked by logout.",
	},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SalesRecordedTotal,
		SalesRejectedTotal,
		UnitsSoldTotal,
		SaleDuration,
		ProductChangesTotal,
		LoginsTotal,
		TokensRevokedTotal,
	}
}

// Register adds every metric of this package to reg. Registering twice on
// the same registry is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

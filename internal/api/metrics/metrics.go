// Package metrics defines the marketplace's business counters. It is the
// single source of truth for metric names, labels, and help strings.
//
// Call Register() once per registry at startup, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "market"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through /register.
var UsersRegisteredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "throttled"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

var ProductsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products listed.",
	},
)

var SearchesTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of product searches.",
	},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

var ReportsSubmittedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of user reports submitted.",
	},
)

// Register adds every marketplace metric to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		UsersRegisteredTotal,
		LoginsTotal,
		ProductsCreatedTotal,
		SearchesTotal,
		ReportsSubmittedTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Package metrics defines and registers all custom Prometheus metrics for
// the handyman marketplace API. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "handyman"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
// Label:
//   - flexible_timing: "true" or "false"
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs posted, by timing flexibility.",
	},
	[]string{"flexible_timing"},
)

// ── Offer metrics ─────────────────────────────────────────────────────────────

// OffersSubmittedTotal counts offer submissions.
// Label:
//   - result: "new" (first bid on the job by this handyman) or "replaced"
//     (the bid overwrote a previous one)
var OffersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "offers_submitted_total",
		Help:      "Total number of offers submitted, by upsert result (new/replaced).",
	},
	[]string{"result"},
)

// ── Hire metrics ──────────────────────────────────────────────────────────────

// HiresTotal counts successful hires (assignments created).
var HiresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hires_total",
		Help:      "Total number of successful hires.",
	},
)

// HireConflictsTotal counts hire attempts rejected because the job
// already had an assignment.
var HireConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hire_conflicts_total",
		Help:      "Total number of hire attempts rejected on an already-assigned job.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CategoryCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (loaded from the store)
var CategoryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

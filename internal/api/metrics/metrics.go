// Package metrics defines and registers all custom Prometheus metrics for the
// recipe catalog. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipes"

// ── Recipe metrics ────────────────────────────────────────────────────────────

// RecipesCreatedTotal counts newly created recipes.
// Label:
//   - kind: "owned" or "seed"
var RecipesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of recipes created, by kind (owned/seed).",
	},
	[]string{"kind"},
)

// CookingLogEntriesTotal counts cooking log mutations.
// Label:
//   - op: "add" or "remove"
var CookingLogEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cooking_log_entries_total",
		Help:      "Total number of cooking log mutations, by operation.",
	},
	[]string{"op"},
)

// WriteRetriesTotal counts conditional-write attempts that lost the version
// race and were retried.
var WriteRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_retries_total",
		Help:      "Total number of recipe writes retried after a version conflict.",
	},
)

// WriteConflictsTotal counts writes that exhausted the retry budget and were
// surfaced to the caller as errors.
var WriteConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "write_conflicts_total",
		Help:      "Total number of recipe writes abandoned after exhausting retries.",
	},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful registrations.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users registered.",
	},
)

// DuplicateUsersTotal counts registrations rejected for a uniqueness
// violation.
// Label:
//   - field: "username" or "email"
var DuplicateUsersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_users_total",
		Help:      "Total number of registrations rejected as duplicates, by colliding field.",
	},
	[]string{"field"},
)

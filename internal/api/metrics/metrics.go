// Package metrics defines and registers all custom Prometheus metrics for the
// social network API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the default
// registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsTotal counts post lifecycle operations.
// Label:
//   - action: "created" or "deleted"
var PostsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_total",
		Help:      "Total number of post create/delete operations.",
	},
	[]string{"action"},
)

// LikesTotal counts like toggles that actually changed state (duplicates and
// missing likes are rejected before they reach the store).
// Label:
//   - action: "like" or "unlike"
var LikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of successful like and unlike operations.",
	},
	[]string{"action"},
)

// CommentsTotal counts comment mutations.
// Label:
//   - action: "added" or "deleted"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment add/delete operations.",
	},
	[]string{"action"},
)

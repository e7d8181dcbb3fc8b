// Package metrics defines and registers all custom Prometheus metrics for
// the StreamHub user service. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "streamhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Label:
//   - result: "rotated", "invalid" (bad/expired token) or "superseded"
//     (rotation cross-check failed)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts access tokens rejected by the auth middleware.
// Label:
//   - reason: "missing", "invalid" or "unknown_account"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of rejected access tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts media uploads accepted through profile endpoints.
// Label:
//   - kind: "avatar" or "cover_image"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media files uploaded, by kind.",
	},
	[]string{"kind"},
)

// MediaCleanupTotal counts asynchronous deletions of superseded media.
// Label:
//   - result: "ok" or "error"
var MediaCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_cleanup_total",
		Help:      "Total number of superseded media deletions, by result.",
	},
	[]string{"result"},
)

// Package metrics defines and registers all custom Prometheus metrics for
// the records account/auth core. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "records"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks at the auth gate.
// Label:
//   - result: "ok", "missing", "malformed", "signature_invalid", "expired" or "error"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, labelled by outcome.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures how long a single bcrypt operation takes,
// including time spent queued behind the concurrency gate.
// Label:
//   - operation: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and verify operations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// AccountMutationsTotal counts account lifecycle writes that succeeded.
// Label:
//   - operation: "create", "update" or "delete"
var AccountMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_mutations_total",
		Help:      "Total number of successful account create/update/delete operations.",
	},
	[]string{"operation"},
)

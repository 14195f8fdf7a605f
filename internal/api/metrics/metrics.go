// Package metrics defines and registers the custom Prometheus metrics of the
// backoffice. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Navigation metrics ────────────────────────────────────────────────────────

// NavigationsTotal counts gatekeeper decisions.
// Label:
//   - decision: "render_public", "render_protected", "redirect_to_login" or "render_not_found"
var NavigationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "navigations_total",
		Help:      "Total number of page navigations, by gatekeeper decision.",
	},
	[]string{"decision"},
)

// MenuActivationsTotal counts menu activations on navigation.
// Label:
//   - result: "matched" when a menu entry has the path as URL, "unmatched" otherwise
var MenuActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_activations_total",
		Help:      "Total number of menu activations, by whether the path matched an entry.",
	},
	[]string{"result"},
)

// PageLoadFallbacksTotal counts navigations served the loading page.
var PageLoadFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_load_fallbacks_total",
		Help:      "Total number of navigations answered with the loading fallback page.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionMutationsTotal counts session writes.
// Label:
//   - op: "login", "logout" or "login_failed"
var SessionMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_mutations_total",
		Help:      "Total number of session mutations, by operation.",
	},
	[]string{"op"},
)

// AuditDroppedTotal counts session events dropped because the audit queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of session audit events dropped on a full queue.",
	},
)

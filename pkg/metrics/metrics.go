// Package metrics defines and registers all custom Prometheus metrics for the
// website builder. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init. The
// router gathers that registry on GET /metrics next to the HTTP metrics of
// echoprometheus, whichever registry those were registered on.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "website_builder"

// ── Site metrics ──────────────────────────────────────────────────────────────

// SitesCreatedTotal counts newly created sites.
// Label:
//   - gift_card: "yes" or "no", the creator's gift card interest
var SitesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sites_created_total",
		Help:      "Total number of sites created, by gift card interest.",
	},
	[]string{"gift_card"},
)

// SitesRejectedTotal counts creation attempts that did not produce a site.
// Label:
//   - reason: "validation" or "duplicate_slug"
var SitesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sites_rejected_total",
		Help:      "Total number of site creations rejected, by reason.",
	},
	[]string{"reason"},
)

// SitesUpdatedTotal counts successful edits made through an edit token.
var SitesUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sites_updated_total",
		Help:      "Total number of site updates applied.",
	},
)

// SiteLookupsTotal counts public lookups.
// Labels:
//   - by: "slug" or "token"
//   - result: "hit", "miss" or "error"
var SiteLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "site_lookups_total",
		Help:      "Total number of site lookups, by key and result.",
	},
	[]string{"by", "result"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts files forwarded to the media host.
// Label:
//   - result: "ok" or "error"
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of files uploaded to the media host, by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AdminLoginsTotal counts admin login attempts.
// Label:
//   - result: "ok" or "rejected"
var AdminLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

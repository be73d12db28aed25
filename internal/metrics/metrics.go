// Package metrics exposes Prometheus instrumentation for the API and the
// recipe engagement paths.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests by route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dishly_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// RatingsTotal counts rating submissions.
	// Labels:
	//   - outcome: "created", "updated"
	RatingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishly_ratings_total",
			Help: "Total number of rating submissions",
		},
		[]string{"outcome"},
	)

	// LikeChangesTotal counts like and unlike calls.
	// Labels:
	//   - action: "like", "unlike"
	//   - changed: "true" when a like fact was added or removed
	LikeChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishly_like_changes_total",
			Help: "Total number of like and unlike requests",
		},
		[]string{"action", "changed"},
	)

	ShoppingListsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dishly_shopping_lists_generated_total",
			Help: "Total number of generated shopping lists",
		},
	)

	ShoppingItemsMerged = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dishly_shopping_list_items",
			Help:    "Number of merged items per generated shopping list",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dishly_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"route"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a completed request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordRating(created bool) {
	if created {
		RatingsTotal.WithLabelValues("created").Inc()
		return
	}
	RatingsTotal.WithLabelValues("updated").Inc()
}

func RecordLikeChange(action string, changed bool) {
	LikeChangesTotal.WithLabelValues(action, strconv.FormatBool(changed)).Inc()
}

func RecordShoppingList(items int) {
	ShoppingListsGenerated.Inc()
	ShoppingItemsMerged.Observe(float64(items))
}

func RecordRateLimited(route string) {
	RateLimitedTotal.WithLabelValues(route).Inc()
}

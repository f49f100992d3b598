package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelCurrency},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelCurrency},
	)

	MoneyEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
		[]string{LabelCurrency},
	)

	MoneySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
		[]string{LabelCurrency},
	)

	PriceChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceChanges,
			Help: HelpTextPriceChanges,
		},
		[]string{LabelCurrency},
	)
)

// Cache Metrics
var (
	ListingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingCacheHits,
			Help: HelpTextListingCacheHits,
		},
		[]string{LabelBackend},
	)

	ListingCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingCacheMisses,
			Help: HelpTextListingCacheMisses,
		},
		[]string{LabelBackend},
	)

	ListingCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameListingCacheEntries,
			Help: HelpTextListingCacheEntries,
		},
		[]string{LabelBackend},
	)
)

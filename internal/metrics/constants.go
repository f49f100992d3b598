package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameItemsSold           = "listings_items_sold_total"
	MetricNameItemsBought         = "listings_items_bought_total"
	MetricNameMoneyEarned         = "money_earned_total"
	MetricNameMoneySpent          = "money_spent_total"
	MetricNamePriceChanges        = "listing_price_changes_total"
	MetricNameListingCacheHits    = "listing_cache_hits_total"
	MetricNameListingCacheMisses  = "listing_cache_misses_total"
	MetricNameListingCacheEntries = "listing_cache_entries"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Business metric help text
const (
	HelpTextItemsSold           = "Units shops sold to players"
	HelpTextItemsBought         = "Units shops bought back from players"
	HelpTextMoneyEarned         = "Money players earned selling to shops"
	HelpTextMoneySpent          = "Money players spent buying from shops"
	HelpTextPriceChanges        = "Number of listing repricings"
	HelpTextListingCacheHits    = "Listing cache lookups served from cache"
	HelpTextListingCacheMisses  = "Listing cache lookups that fell through to storage"
	HelpTextListingCacheEntries = "Listings currently held by the cache"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCurrency = "currency"
	LabelBackend  = "backend"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgMetricsRecorded     = "Metrics recorded for event"
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
)

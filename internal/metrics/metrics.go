package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_catalog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_catalog_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_catalog_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_catalog_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Ingestion pipeline metrics
var (
	IngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_catalog_ingest_total",
			Help: "Total number of ingestion attempts by outcome",
		},
		[]string{"status"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_catalog_ingest_duration_seconds",
			Help:    "End-to-end ingestion duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IngestCleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_catalog_ingest_cleanup_failures_total",
			Help: "Compensating cleanup attempts that themselves failed",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_catalog_thumbnail_generations_total",
			Help: "Total number of thumbnail generations by status",
		},
		[]string{"status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_catalog_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Conversion metrics
var (
	ConvertTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_catalog_convert_total",
			Help: "Total number of preview conversions by status",
		},
		[]string{"status"},
	)

	ConvertBytesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_catalog_convert_bytes_saved_total",
			Help: "Cumulative bytes saved by preview conversions",
		},
	)
)

// Watcher metrics (advisory directory observation only)
var (
	WatcherScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_catalog_watcher_scans_total",
			Help: "Total number of advisory directory scans",
		},
	)

	WatcherFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "image_catalog_watcher_files",
			Help: "Files observed in a managed directory at last scan",
		},
		[]string{"dir"}, // "assets", "thumbnails"
	)

	WatcherBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "image_catalog_watcher_bytes",
			Help: "Bytes observed in a managed directory at last scan",
		},
		[]string{"dir"},
	)
)

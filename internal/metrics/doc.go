// Package metrics provides Prometheus instrumentation for the image
// catalog. All metrics are prefixed with "image_catalog_".
//
// Categories:
//   - HTTP: request totals, durations and in-flight gauge
//   - Database: query totals, durations and open connections
//   - Ingest: pipeline runs by status and durations
//   - Thumbnails: generation totals and durations
//   - Convert: conversion totals and bytes saved
//   - Watcher: advisory directory scan counters and content gauges
//
// Metrics register with the default registry via promauto. Expose them by
// mounting promhttp.Handler() on the metrics listener (see Serve).
package metrics

// Package watcher observes the asset and thumbnail directories on a
// timer, exporting file counts and byte totals as logs and gauges. It
// never triggers ingestion; observation results carry no control flow.
package watcher

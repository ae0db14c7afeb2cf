// Command catalogctl is a maintenance tool for the image catalog
// database. It reads the same catalog.db the server uses and prints
// summaries without going through the HTTP API, which is useful when
// the server is down or the catalog is mounted offline.
//
// Usage:
//
//	catalogctl stats     # record count, total size, missing thumbnails
//	catalogctl settings  # persisted directory settings
//	catalogctl list      # one line per cataloged image
//
// The catalog root is taken from ROOT_DIR (default /data).
package main

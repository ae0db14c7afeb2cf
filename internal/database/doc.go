// Package database provides SQLite storage for the image catalog.
//
// It handles:
//   - Image metadata records (single flat images table, scan-and-sort reads)
//   - Persisted settings (thumbnails/assets directory paths)
//
// The database uses WAL mode for concurrent read performance and includes
// automatic schema initialization and migrations.
package database

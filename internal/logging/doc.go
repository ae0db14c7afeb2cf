// Package logging provides a small leveled logger for the image catalog.
//
// Levels are DEBUG, INFO, WARN, ERROR and FATAL. The active level comes
// from the LOG_LEVEL environment variable; setting DEBUG=true forces the
// debug level regardless of LOG_LEVEL.
package logging

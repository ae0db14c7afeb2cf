// Package middleware provides HTTP middleware for the image catalog
// server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics
//   - Response compression (gzip) for API and page responses
//   - Configurable filtering for served images and health checks
package middleware

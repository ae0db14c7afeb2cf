// Package handlers implements the HTTP surface of the image catalog:
// the ranked listing, image ingestion, format conversion, settings, and
// the thumbnail/asset delivery routes.
package handlers

// Package ingest implements the image-ingestion pipeline: request
// validation, asset placement, thumbnail generation, and the single
// metadata insert that makes an image part of the catalog.
package ingest

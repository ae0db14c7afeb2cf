// Package media provides image handling for the catalog: derived
// thumbnail generation with aspect-preserving resize, and lossy preview
// conversion with a size report.
package media

// Package memory configures Go's soft memory limit from container
// environment variables so the runtime leaves headroom for image decode
// spikes instead of discovering the cgroup limit via the OOM killer.
package memory

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitializeMetricsPopulatesLabels(t *testing.T) {
	InitializeMetrics()

	// Pre-populated label combinations must exist with a zero value.
	if got := testutil.ToFloat64(IngestTotal.WithLabelValues("validation")); got != 0 {
		t.Errorf("IngestTotal{status=validation} = %v, want 0", got)
	}
	if got := testutil.ToFloat64(WatcherFiles.WithLabelValues("assets")); got != 0 {
		t.Errorf("WatcherFiles{dir=assets} = %v, want 0", got)
	}
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(IngestTotal.WithLabelValues("success"))
	IngestTotal.WithLabelValues("success").Inc()
	after := testutil.ToFloat64(IngestTotal.WithLabelValues("success"))

	if after != before+1 {
		t.Errorf("IngestTotal{status=success} = %v, want %v", after, before+1)
	}
}

func TestGaugesSet(t *testing.T) {
	WatcherBytes.WithLabelValues("thumbnails").Set(2048)
	if got := testutil.ToFloat64(WatcherBytes.WithLabelValues("thumbnails")); got != 2048 {
		t.Errorf("WatcherBytes{dir=thumbnails} = %v, want 2048", got)
	}
}

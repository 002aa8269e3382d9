package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("metrics_test", OutcomeSuccess))

	RecordRequest("metrics_test", OutcomeSuccess, 15*time.Millisecond)
	RecordRequest("metrics_test", OutcomeSuccess, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("metrics_test", OutcomeSuccess))
	assert.Equal(t, before+2, after)
}

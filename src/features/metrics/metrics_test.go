package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveResolution_IncrementsOutcome(t *testing.T) {
	before := testutil.ToFloat64(resolutions.WithLabelValues(OutcomeCache))

	ObserveResolution(OutcomeCache, 5*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(resolutions.WithLabelValues(OutcomeCache)))
}

func TestRegister_IsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

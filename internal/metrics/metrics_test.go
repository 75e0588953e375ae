package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.InboundMessages.WithLabelValues(OutcomeStored).Inc()
	m.SetReady(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InboundMessages.WithLabelValues(OutcomeStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionReady))

	_, err = New(reg)
	assert.Error(t, err, "registering twice must fail")
}

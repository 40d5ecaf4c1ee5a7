package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	StoreOperations.WithLabelValues("services", "list", "ok").Inc()
	require.GreaterOrEqual(t, testutil.ToFloat64(StoreOperations.WithLabelValues("services", "list", "ok")), 1.0)

	// registering twice on the same registry is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}

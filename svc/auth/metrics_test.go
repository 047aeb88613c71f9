package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netman-app/authkit/svc/auth"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := auth.NewPrometheusRecorder(reg)

	r.Observe("sign_in", "ok", 20*time.Millisecond)
	r.Observe("sign_in", "ok", 30*time.Millisecond)
	r.Observe("sign_in", auth.KindForbidden.String(), time.Millisecond)

	expected := `
# HELP authkit_operations_total Total number of auth use cases by outcome.
# TYPE authkit_operations_total counter
authkit_operations_total{operation="sign_in",outcome="forbidden"} 1
authkit_operations_total{operation="sign_in",outcome="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "authkit_operations_total"))

	n, err := testutil.GatherAndCount(reg, "authkit_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Panics(t, func() { auth.NewPrometheusRecorder(reg) }, "collectors register once per registry")
}

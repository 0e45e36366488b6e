package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
)

// counterValue reads pcd_client_requests_total for the given labels from
// the default registry.
func counterValue(t *testing.T, op, outcome string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "pcd_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == op && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, "success", outcomeFor(nil))
	assert.Equal(t, "api_error", outcomeFor(errors.NewAPIError("results", errors.ErrResults, 404, nil, "message", "x")))
	assert.Equal(t, "malformed", outcomeFor(errors.NewDecodeError("results", 200, []byte("{"), nil)))
	assert.Equal(t, "invalid_input", outcomeFor(errors.NewInputError("results", "empty image id")))
	assert.Equal(t, "transport_error", outcomeFor(errors.NewTransportError("results", fmt.Errorf("refused"))))
}

func TestMetrics_CountsOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/results/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	ctx := context.Background()

	before := counterValue(t, opResults, "api_error")
	_, err = c.GetResults(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, before+1, counterValue(t, opResults, "api_error"))

	before = counterValue(t, opHealth, "success")
	c.HealthCheck(ctx)
	assert.Equal(t, before+1, counterValue(t, opHealth, "success"))
}

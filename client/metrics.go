package client

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/Naufalpc11/Wood-Classification/client/internal/errors"
)

const (
	opUpload   = "upload"
	opProcess  = "process"
	opClassify = "classify"
	opResults  = "results"
	opDemo     = "demo"
	opHealth   = "health"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcd_client",
			Name:      "requests_total",
			Help:      "Client operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pcd_client",
			Name:      "request_duration_seconds",
			Help:      "Client operation latency, including retries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcd_client",
			Name:      "retries_total",
			Help:      "Requests re-sent by the retry transport.",
		},
		[]string{"method"},
	)
)

func outcomeFor(err error) string {
	var apiErr *errors.APIError
	switch {
	case err == nil:
		return "success"
	case stderrors.As(err, &apiErr):
		return "api_error"
	case stderrors.Is(err, errors.ErrMalformedResponse):
		return "malformed"
	case stderrors.Is(err, errors.ErrInvalidInput):
		return "invalid_input"
	default:
		return "transport_error"
	}
}

func observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	outcome := outcomeFor(err)
	requestsTotal.WithLabelValues(op, outcome).Inc()
	if err != nil {
		log.Debug().Err(err).Str("operation", op).Str("outcome", outcome).Dur("elapsed", elapsed).Msg("client call failed")
	}
}

func observeHealth(start time.Time, hs HealthStatus) {
	requestDuration.WithLabelValues(opHealth).Observe(time.Since(start).Seconds())
	outcome := "success"
	if !hs.Reachable() {
		outcome = "unreachable"
	}
	requestsTotal.WithLabelValues(opHealth, outcome).Inc()
}

package middleware

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "imm_http_requests_total",
			Help: "Total de requisições HTTP por método e status",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "imm_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

func observeRequest(method string, statusCode int, seconds float64) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, status).Inc()
	httpRequestDuration.WithLabelValues(method, status).Observe(seconds)
}

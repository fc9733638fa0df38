package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imm/dashboard-api/internal/api/handler/router"
	"github.com/imm/dashboard-api/internal/scheduler"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	"github.com/imm/dashboard-api/internal/usecases/authenticating"
	"github.com/imm/dashboard-api/internal/usecases/exporting"
	"github.com/imm/dashboard-api/pkg/middleware"
)

func Healthcheck(db Pinger, cache Pinger, cacheEnabled bool) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db, cache, cacheEnabled),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/auth/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

func Analytics(service analytics.Analyzer, exporter exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:        "/analytics/overview",
			Method:      http.MethodGet,
			Handler:     GetAnalyticsOverview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead()},
		},
		{
			Path:        "/analytics/timeseries",
			Method:      http.MethodGet,
			Handler:     GetAnalyticsTimeseries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead()},
		},
		{
			Path:        "/analytics/export",
			Method:      http.MethodGet,
			Handler:     ExportAnalytics(service, exporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead()},
		},
		{
			Path:        "/analytics/projects/:id",
			Method:      http.MethodGet,
			Handler:     GetProjectAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead()},
		},
	}
}

func CronJobs(warmer scheduler.CacheWarmer) []router.Route {
	return []router.Route{
		{
			Path:        "/analytics/cache/warmup",
			Method:      http.MethodPost,
			Handler:     RunCacheWarmup(warmer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead(), middleware.AdminOnly()},
		},
		{
			Path:        "/analytics/cache/warmup/status",
			Method:      http.MethodGet,
			Handler:     GetCacheWarmupStatus(warmer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnalyticsRead(), middleware.AdminOnly()},
		},
	}
}

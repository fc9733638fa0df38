package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/imm/dashboard-api/pkg/log"
)

// Pinger é qualquer dependência que responde a um ping (banco, cache)
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler verifica o banco e o cache.
// O cache é opcional: indisponível não derruba o healthcheck.
func HealthcheckHandler(db Pinger, cache Pinger, cacheEnabled bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]any{
			"status":   "ok",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "ok",
			"cache":    "disabled",
		}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Error("healthcheck: banco indisponível")
				status = http.StatusServiceUnavailable
				body["status"] = "unavailable"
				body["database"] = "unavailable"
			}
		}

		if cacheEnabled && cache != nil {
			body["cache"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: cache indisponível")
				body["cache"] = "unavailable"
			}
		}

		writeJSON(w, r, status, body)
	})
}

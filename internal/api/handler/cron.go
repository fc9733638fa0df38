package handler

import (
	"net/http"

	"github.com/imm/dashboard-api/internal/scheduler"
	"github.com/imm/dashboard-api/pkg/apiErrors"
	"github.com/imm/dashboard-api/pkg/log"
)

// RunCacheWarmup dispara o aquecimento do cache em segundo plano
func RunCacheWarmup(warmer scheduler.CacheWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if warmer == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de aquecimento de cache não disponível", nil)
			return
		}

		log.ForContext(r.Context()).Info("cron: aquecimento de cache solicitado manualmente")
		warmer.TriggerManualSync()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Aquecimento de cache iniciado",
		})
	}
}

// GetCacheWarmupStatus retorna o status do aquecimento de cache
func GetCacheWarmupStatus(warmer scheduler.CacheWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if warmer == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de aquecimento de cache não disponível", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, warmer.GetStatus())
	}
}

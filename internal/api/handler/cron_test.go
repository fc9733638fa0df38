package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imm/dashboard-api/internal/domain"
	schedulerMocks "github.com/imm/dashboard-api/internal/scheduler/mocks"
	"github.com/imm/dashboard-api/pkg/apiErrors"
)

func TestCronJobs(t *testing.T) {
	t.Run("admin dispara o aquecimento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		warmer := schedulerMocks.NewMockCacheWarmer(ctrl)
		warmer.EXPECT().TriggerManualSync()

		rec := serve(t, withClaims(CronJobs(warmer), adminClaims), http.MethodPost, "/analytics/cache/warmup")

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("status do aquecimento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		warmer := schedulerMocks.NewMockCacheWarmer(ctrl)
		warmer.EXPECT().GetStatus().Return(map[string]any{"sync_running": false, "sync_enabled": true})

		rec := serve(t, withClaims(CronJobs(warmer), adminClaims), http.MethodGet, "/analytics/cache/warmup/status")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sync_running":false,"sync_enabled":true}`, rec.Body.String())
	})

	t.Run("apenas administradores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		warmer := schedulerMocks.NewMockCacheWarmer(ctrl)

		claims := &domain.Claims{
			UserID:      "coord-1",
			Roles:       []string{domain.RoleCoordenacao},
			Permissions: []string{domain.PermissionAnalyticsRead},
		}
		rec := serve(t, withClaims(CronJobs(warmer), claims), http.MethodPost, "/analytics/cache/warmup")

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
	})

	t.Run("serviço não configurado", func(t *testing.T) {
		rec := serve(t, withClaims(CronJobs(nil), adminClaims), http.MethodPost, "/analytics/cache/warmup")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
	})
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		db           Pinger
		cache        Pinger
		cacheEnabled bool
		wantStatus   int
		wantBody     map[string]string
	}{
		{
			name:         "tudo disponível",
			db:           stubPinger{},
			cache:        stubPinger{},
			cacheEnabled: true,
			wantStatus:   http.StatusOK,
			wantBody:     map[string]string{"status": "ok", "database": "ok", "cache": "ok"},
		},
		{
			name:       "cache desabilitado",
			db:         stubPinger{},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"status": "ok", "database": "ok", "cache": "disabled"},
		},
		{
			name:         "cache fora do ar não derruba o serviço",
			db:           stubPinger{},
			cache:        stubPinger{err: errors.New("connection refused")},
			cacheEnabled: true,
			wantStatus:   http.StatusOK,
			wantBody:     map[string]string{"status": "ok", "database": "ok", "cache": "unavailable"},
		},
		{
			name:       "banco fora do ar",
			db:         stubPinger{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"status": "unavailable", "database": "unavailable", "cache": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := withClaims(Healthcheck(tt.db, tt.cache, tt.cacheEnabled), nil)
			rec := serve(t, h, http.MethodGet, "/healthcheck")

			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			for key, want := range tt.wantBody {
				assert.Equal(t, want, body[key], key)
			}
			assert.NotEmpty(t, body["time"])
		})
	}
}

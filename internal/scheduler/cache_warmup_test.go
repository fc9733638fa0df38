package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/internal/usecases/analytics/mocks"
)

func newWarmupService(analyzer *mocks.MockAnalyzer, enabled bool) *CacheWarmupService {
	return NewCacheWarmupService(analyzer, &config.Config{
		CacheWarmup: config.CacheWarmup{CronSchedule: "0 */4 * * *", Enabled: enabled},
	})
}

func TestCacheWarmupService_WarmUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	unrestricted := domain.OverviewFilters{Interval: domain.IntervalDay}

	gomock.InOrder(
		analyzer.EXPECT().GetOverview(gomock.Any(), unrestricted).Return(&domain.OverviewResponse{}, nil),
		analyzer.EXPECT().GetTimeseries(gomock.Any(), domain.MetricBeneficiarias, unrestricted).Return(nil, nil),
		analyzer.EXPECT().GetTimeseries(gomock.Any(), domain.MetricMatriculas, unrestricted).Return(nil, nil),
		analyzer.EXPECT().GetTimeseries(gomock.Any(), domain.MetricAssiduidade, unrestricted).Return(nil, nil),
	)

	service := newWarmupService(analyzer, true)

	require.NoError(t, service.WarmUp(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.Equal(t, "0 */4 * * *", status["sync_cron"])
}

func TestCacheWarmupService_WarmUpFailureIsRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().GetOverview(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	service := newWarmupService(analyzer, true)

	err := service.WarmUp(context.Background())
	require.Error(t, err)

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Contains(t, status["last_sync_error"], "connection refused")
}

func TestCacheWarmupService_SkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// nenhuma chamada ao analyzer é esperada
	service := newWarmupService(mocks.NewMockAnalyzer(ctrl), true)
	service.syncRunning = true

	err := service.WarmUp(context.Background())
	assert.ErrorIs(t, err, errWarmupRunning)

	service.TriggerManualSync()
	assert.Equal(t, true, service.GetStatus()["sync_running"])
}

func TestCacheWarmupService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newWarmupService(mocks.NewMockAnalyzer(ctrl), false)

	require.NoError(t, service.Start(context.Background()))
	assert.Empty(t, service.scheduler.Jobs())
}

func TestCacheWarmupService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewCacheWarmupService(mocks.NewMockAnalyzer(ctrl), &config.Config{
		CacheWarmup: config.CacheWarmup{CronSchedule: "não é cron", Enabled: true},
	})

	assert.Error(t, service.Start(context.Background()))
}

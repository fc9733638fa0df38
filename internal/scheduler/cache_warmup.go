package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	"github.com/imm/dashboard-api/pkg/log"
)

//go:generate mockgen -source=cache_warmup.go -destination=mocks/mock_cache_warmup.go -package=mocks

// CacheWarmer é a parte do agendador exposta para as rotas administrativas
type CacheWarmer interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// warmupMetrics são as séries aquecidas junto com o overview
var warmupMetrics = []string{
	domain.MetricBeneficiarias,
	domain.MetricMatriculas,
	domain.MetricAssiduidade,
}

// CacheWarmupService recalcula periodicamente o overview irrestrito da janela padrão,
// para que a primeira visita da coordenação não pague o custo das consultas
type CacheWarmupService struct {
	scheduler         *gocron.Scheduler
	config            config.CacheWarmup
	analyzer          analytics.Analyzer
	timeout           time.Duration
	syncRunning       bool
	syncMutex         sync.Mutex
	lastSyncStartedAt time.Time
	lastSyncEndedAt   time.Time
	lastSyncError     string
}

func NewCacheWarmupService(analyzer analytics.Analyzer, appConfig *config.Config) *CacheWarmupService {
	log.L.WithFields(log.Fields{
		"cron_schedule": appConfig.CacheWarmup.CronSchedule,
		"enabled":       appConfig.CacheWarmup.Enabled,
		"cache_enabled": appConfig.Redis.URL != "",
	}).Info("Configuração do aquecimento de cache carregada")

	return &CacheWarmupService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    appConfig.CacheWarmup,
		analyzer:  analyzer,
		timeout:   2 * time.Minute,
	}
}

// Start inicia o agendador
func (s *CacheWarmupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Aquecimento de cache desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de aquecimento de cache")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento de cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de aquecimento de cache")
		s.scheduler.Stop()
	}()

	return nil
}

// errWarmupRunning indica que outra execução já está em andamento
var errWarmupRunning = errors.New("aquecimento de cache já em andamento")

// WarmUp calcula o overview e as séries diárias sem restrição de escopo.
// Execuções concorrentes são descartadas.
func (s *CacheWarmupService) WarmUp(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return errWarmupRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	err := s.warmUp(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncEndedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	return err
}

func (s *CacheWarmupService) warmUp(ctx context.Context) error {
	filters := domain.OverviewFilters{Interval: domain.IntervalDay}

	if _, err := s.analyzer.GetOverview(ctx, filters); err != nil {
		return fmt.Errorf("overview: %w", err)
	}

	for _, metric := range warmupMetrics {
		if _, err := s.analyzer.GetTimeseries(ctx, metric, filters); err != nil {
			return fmt.Errorf("série %s: %w", metric, err)
		}
	}

	return nil
}

// run é o job agendado; erros ficam no log e no status
func (s *CacheWarmupService) run() {
	ctx, _ := log.WithCorrelationID(context.Background())
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger := log.ForContext(ctx)
	startTime := time.Now()

	logger.Info("Iniciando aquecimento do cache de analytics")

	err := s.WarmUp(ctx)
	switch {
	case errors.Is(err, errWarmupRunning):
		logger.Info("Aquecimento de cache já em andamento, ignorando")
	case err != nil:
		logger.WithError(err).Error("Erro ao aquecer cache de analytics")
	default:
		logger.WithField("duration", time.Since(startTime).String()).Info("Aquecimento do cache de analytics concluído")
	}
}

// TriggerManualSync inicia manualmente um aquecimento em segundo plano
func (s *CacheWarmupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Aquecimento de cache já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	log.L.Info("Iniciando aquecimento manual do cache de analytics")
	go s.run()
}

// GetStatus retorna o status atual do aquecimento
func (s *CacheWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":         s.syncRunning,
		"sync_cron":            s.config.CronSchedule,
		"sync_enabled":         s.config.Enabled,
		"last_sync_started_at": s.lastSyncStartedAt,
		"last_sync_ended_at":   s.lastSyncEndedAt,
		"last_sync_error":      s.lastSyncError,
	}
}

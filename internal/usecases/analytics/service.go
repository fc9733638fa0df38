// Package analytics agrega os indicadores do painel respeitando o escopo de projetos do usuário.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/imm/dashboard-api/infrastructure/cache"
	"github.com/imm/dashboard-api/infrastructure/repository"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_analyzer.go -package=mocks

type Analyzer interface {
	GetOverview(ctx context.Context, filters domain.OverviewFilters) (*domain.OverviewResponse, error)
	GetTimeseries(ctx context.Context, metric string, filters domain.OverviewFilters) ([]domain.SeriesPoint, error)
	GetProjectAnalytics(ctx context.Context, projectID string, filters domain.OverviewFilters) (*domain.OverviewResponse, error)
}

type Service struct {
	repo  repository.AnalyticsRepository
	cache *cache.Cache
	now   func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para a janela padrão
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService aceita cache nulo; nesse caso toda chamada vai ao banco
func NewService(repo repository.AnalyticsRepository, c *cache.Cache, opts ...Option) Analyzer {
	s := &Service{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) GetOverview(ctx context.Context, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
	dateRange, err := ResolveDateRange(filters.From, filters.To, s.now())
	if err != nil {
		return nil, err
	}

	query := domain.NewQueryFilters(dateRange, filters)
	// as séries do overview são sempre diárias
	query.Interval = domain.IntervalDay

	key := overviewCacheKey(dateRange, filters)

	log.ForContext(ctx).WithFields(log.Fields{
		"cache_key":      key,
		"project_filter": query.Project.Mode.String(),
	}).Debug("Calculando overview de analytics")

	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) (*domain.OverviewResponse, error) {
		return s.buildOverview(ctx, query)
	})
}

func (s *Service) GetTimeseries(ctx context.Context, metric string, filters domain.OverviewFilters) ([]domain.SeriesPoint, error) {
	dateRange, err := ResolveDateRange(filters.From, filters.To, s.now())
	if err != nil {
		return nil, err
	}

	query := domain.NewQueryFilters(dateRange, filters)
	resolvedMetric, fetch := s.seriesFetcher(metric)
	key := timeseriesCacheKey(resolvedMetric, query.Interval, dateRange, filters)

	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]domain.SeriesPoint, error) {
		points, err := fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		if points == nil {
			points = []domain.SeriesPoint{}
		}
		return points, nil
	})
}

// GetProjectAnalytics é o overview com o projeto fixado; o escopo já foi validado na entrada
func (s *Service) GetProjectAnalytics(ctx context.Context, projectID string, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
	return s.GetOverview(ctx, filters.WithProject(projectID))
}

type seriesFunc func(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error)

// seriesFetcher escolhe a agregação da métrica; métricas desconhecidas usam assiduidade
func (s *Service) seriesFetcher(metric string) (string, seriesFunc) {
	switch metric {
	case domain.MetricBeneficiarias:
		return domain.MetricBeneficiarias, s.repo.SeriesNewBeneficiaries
	case domain.MetricMatriculas:
		return domain.MetricMatriculas, s.repo.SeriesNewEnrollments
	default:
		return domain.MetricAssiduidade, s.repo.SeriesAttendance
	}
}

// buildOverview calcula as quatro seções em paralelo; qualquer falha derruba a resposta inteira
func (s *Service) buildOverview(ctx context.Context, query domain.QueryFilters) (*domain.OverviewResponse, error) {
	var (
		response domain.OverviewResponse
		started  = time.Now()
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		kpis, err := s.fetchKPIs(gctx, query)
		if err != nil {
			return fmt.Errorf("kpis: %w", err)
		}
		response.KPIs = kpis
		return nil
	})

	g.Go(func() error {
		series, err := s.fetchSeries(gctx, query)
		if err != nil {
			return fmt.Errorf("séries: %w", err)
		}
		response.Series = series
		return nil
	})

	g.Go(func() error {
		categories, err := s.fetchCategories(gctx, query)
		if err != nil {
			return fmt.Errorf("categorias: %w", err)
		}
		response.Categorias = categories
		return nil
	})

	g.Go(func() error {
		lists, err := s.fetchLists(gctx, query)
		if err != nil {
			return fmt.Errorf("listas: %w", err)
		}
		response.Listas = lists
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithField("duration_ms", time.Since(started).Milliseconds()).Debug("Overview calculado")

	return &response, nil
}

func (s *Service) fetchKPIs(ctx context.Context, query domain.QueryFilters) (domain.KPIs, error) {
	var kpis domain.KPIs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		kpis.BeneficiariasAtivas, err = s.repo.CountActiveBeneficiaries(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		kpis.BeneficiariasNovas, err = s.repo.CountNewBeneficiaries(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		kpis.MatriculasAtivas, err = s.repo.CountActiveEnrollments(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		kpis.AssiduidadeMedia, err = s.repo.AverageAttendance(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		kpis.ConsentimentosPendentes, err = s.repo.CountPendingConsents(gctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.KPIs{}, err
	}
	return kpis, nil
}

func (s *Service) fetchSeries(ctx context.Context, query domain.QueryFilters) (domain.Series, error) {
	var series domain.Series
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		series.BeneficiariasNovas, err = s.repo.SeriesNewBeneficiaries(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		series.MatriculasNovas, err = s.repo.SeriesNewEnrollments(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		series.Assiduidade, err = s.repo.SeriesAttendance(gctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Series{}, err
	}
	return series, nil
}

func (s *Service) fetchCategories(ctx context.Context, query domain.QueryFilters) (domain.Categories, error) {
	var categories domain.Categories
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		categories.AssiduidadePorProjeto, err = s.repo.AttendanceByProject(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.AssiduidadePorTurma, err = s.repo.AttendanceByCohort(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.Vulnerabilidades, err = s.repo.VulnerabilityCounts(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.FaixaEtaria, err = s.repo.AgeDistribution(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.Bairros, err = s.repo.NeighborhoodCounts(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.CapacidadeProjetos, err = s.repo.ProjectCapacity(gctx, query)
		return err
	})
	g.Go(func() (err error) {
		categories.PlanoAcaoStatus, err = s.repo.ActionPlanStatus(gctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Categories{}, err
	}
	return categories, nil
}

func (s *Service) fetchLists(ctx context.Context, query domain.QueryFilters) (domain.Lists, error) {
	var lists domain.Lists
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		atRisk, err := s.repo.AtRiskEnrollments(gctx, query)
		if err != nil {
			return err
		}
		lists.RiscoEvasao = domain.RankAtRisk(atRisk)
		return nil
	})
	g.Go(func() (err error) {
		lists.ConsentimentosPendentes, err = s.repo.PendingConsents(gctx, query)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Lists{}, err
	}
	return lists, nil
}

func orAll(value *string) string {
	if value == nil || *value == "" {
		return unrestrictedScopeKey
	}
	return *value
}

// scopeKeyFor usa o ScopeKey da requisição ou o recalcula a partir da lista permitida
func scopeKeyFor(filters domain.OverviewFilters) string {
	if filters.ScopeKey != "" {
		return filters.ScopeKey
	}
	if filters.AllowedProjectIDs == nil {
		return unrestrictedScopeKey
	}

	ids := append([]string(nil), filters.AllowedProjectIDs...)
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func overviewCacheKey(dateRange domain.DateRange, filters domain.OverviewFilters) string {
	return fmt.Sprintf("analytics:overview:%s:%s:%s:%s:%s",
		dateRange.From.Format(domain.DateLayout),
		dateRange.To.Format(domain.DateLayout),
		orAll(filters.ProjectID),
		orAll(filters.CohortID),
		scopeKeyFor(filters),
	)
}

func timeseriesCacheKey(metric string, interval domain.Interval, dateRange domain.DateRange, filters domain.OverviewFilters) string {
	return fmt.Sprintf("analytics:timeseries:%s:%s:%s:%s:%s:%s:%s",
		metric,
		interval,
		dateRange.From.Format(domain.DateLayout),
		dateRange.To.Format(domain.DateLayout),
		orAll(filters.ProjectID),
		orAll(filters.CohortID),
		scopeKeyFor(filters),
	)
}

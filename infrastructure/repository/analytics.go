// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/imm/dashboard-api/infrastructure/database/postgres"
	"github.com/imm/dashboard-api/internal/domain"
)

//go:generate mockgen -source=analytics.go -destination=mocks/mock_analytics.go -package=mocks

// AnalyticsRepository executa as consultas agregadas do painel.
// Todas recebem o filtro já resolvido e nunca decidem escopo por conta própria.
type AnalyticsRepository interface {
	CountActiveBeneficiaries(ctx context.Context, filters domain.QueryFilters) (int64, error)
	CountNewBeneficiaries(ctx context.Context, filters domain.QueryFilters) (int64, error)
	CountActiveEnrollments(ctx context.Context, filters domain.QueryFilters) (int64, error)
	AverageAttendance(ctx context.Context, filters domain.QueryFilters) (*float64, error)
	CountPendingConsents(ctx context.Context, filters domain.QueryFilters) (int64, error)

	SeriesNewBeneficiaries(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error)
	SeriesNewEnrollments(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error)
	SeriesAttendance(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error)

	AttendanceByProject(ctx context.Context, filters domain.QueryFilters) ([]domain.AttendanceByProject, error)
	AttendanceByCohort(ctx context.Context, filters domain.QueryFilters) ([]domain.AttendanceByCohort, error)
	VulnerabilityCounts(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error)
	AgeDistribution(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error)
	NeighborhoodCounts(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error)
	ProjectCapacity(ctx context.Context, filters domain.QueryFilters) ([]domain.ProjectCapacity, error)
	ActionPlanStatus(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error)

	AtRiskEnrollments(ctx context.Context, filters domain.QueryFilters) ([]domain.AtRiskEnrollment, error)
	PendingConsents(ctx context.Context, filters domain.QueryFilters) ([]domain.PendingConsent, error)
}

type analyticsRepository struct {
	conn postgres.Queryer
}

func NewAnalyticsRepository(conn postgres.Queryer) AnalyticsRepository {
	return &analyticsRepository{
		conn: conn,
	}
}

// describeError anexa o código SQLSTATE quando o erro vem do Postgres
func describeError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
	}
	return err
}

func (r *analyticsRepository) queryScalar(ctx context.Context, name string, builder squirrel.Sqlizer, dest interface{}) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de %s: %w", name, err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
		return fmt.Errorf("erro ao executar a query de %s: %w", name, describeError(err))
	}

	return nil
}

func (r *analyticsRepository) count(ctx context.Context, name string, builder squirrel.Sqlizer) (int64, error) {
	var total sql.NullInt64
	if err := r.queryScalar(ctx, name, builder, &total); err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// queryList executa a consulta e converte cada linha com scan
func queryList[T any](ctx context.Context, conn postgres.Queryer, name string, builder squirrel.Sqlizer, scan func(*sql.Rows) (T, error)) ([]T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de %s: %w", name, err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query de %s: %w", name, describeError(err))
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de %s: %w", name, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas de %s: %w", name, describeError(err))
	}

	return items, nil
}

func nullableFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}

func (r *analyticsRepository) CountActiveBeneficiaries(ctx context.Context, filters domain.QueryFilters) (int64, error) {
	return r.count(ctx, "beneficiárias ativas", activeBeneficiariesQuery(filters))
}

func (r *analyticsRepository) CountNewBeneficiaries(ctx context.Context, filters domain.QueryFilters) (int64, error) {
	return r.count(ctx, "novas beneficiárias", newBeneficiariesQuery(filters))
}

func (r *analyticsRepository) CountActiveEnrollments(ctx context.Context, filters domain.QueryFilters) (int64, error) {
	return r.count(ctx, "matrículas ativas", activeEnrollmentsQuery(filters))
}

func (r *analyticsRepository) AverageAttendance(ctx context.Context, filters domain.QueryFilters) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.queryScalar(ctx, "assiduidade média", averageAttendanceQuery(filters), &avg); err != nil {
		return nil, err
	}
	return nullableFloat(avg), nil
}

func (r *analyticsRepository) CountPendingConsents(ctx context.Context, filters domain.QueryFilters) (int64, error) {
	return r.count(ctx, "consentimentos pendentes", pendingConsentsCountQuery(filters))
}

func (r *analyticsRepository) series(ctx context.Context, function, aggregate string, filters domain.QueryFilters) ([]domain.SeriesPoint, error) {
	builder, err := seriesQuery(function, aggregate, filters)
	if err != nil {
		return nil, err
	}

	return queryList(ctx, r.conn, function, builder, func(rows *sql.Rows) (domain.SeriesPoint, error) {
		var (
			point domain.SeriesPoint
			value sql.NullFloat64
		)
		if err := rows.Scan(&point.T, &value); err != nil {
			return point, err
		}
		point.V = nullableFloat(value)
		return point, nil
	})
}

func (r *analyticsRepository) SeriesNewBeneficiaries(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error) {
	return r.series(ctx, fnSeriesNewBeneficiaries, "SUM", filters)
}

func (r *analyticsRepository) SeriesNewEnrollments(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error) {
	return r.series(ctx, fnSeriesNewEnrollments, "SUM", filters)
}

func (r *analyticsRepository) SeriesAttendance(ctx context.Context, filters domain.QueryFilters) ([]domain.SeriesPoint, error) {
	return r.series(ctx, fnSeriesAttendance, "AVG", filters)
}

func (r *analyticsRepository) AttendanceByProject(ctx context.Context, filters domain.QueryFilters) ([]domain.AttendanceByProject, error) {
	return queryList(ctx, r.conn, "assiduidade por projeto", attendanceByProjectQuery(filters), func(rows *sql.Rows) (domain.AttendanceByProject, error) {
		var (
			item domain.AttendanceByProject
			rate sql.NullFloat64
		)
		if err := rows.Scan(&item.ProjetoID, &item.Projeto, &rate); err != nil {
			return item, err
		}
		item.Taxa = nullableFloat(rate)
		return item, nil
	})
}

func (r *analyticsRepository) AttendanceByCohort(ctx context.Context, filters domain.QueryFilters) ([]domain.AttendanceByCohort, error) {
	return queryList(ctx, r.conn, "assiduidade por turma", attendanceByCohortQuery(filters), func(rows *sql.Rows) (domain.AttendanceByCohort, error) {
		var (
			item domain.AttendanceByCohort
			rate sql.NullFloat64
		)
		if err := rows.Scan(&item.TurmaID, &item.Turma, &item.Projeto, &rate); err != nil {
			return item, err
		}
		item.Taxa = nullableFloat(rate)
		return item, nil
	})
}

func scanLabeledCount(rows *sql.Rows) (domain.LabeledCount, error) {
	var (
		item  domain.LabeledCount
		label sql.NullString
		total sql.NullInt64
	)
	if err := rows.Scan(&label, &total); err != nil {
		return item, err
	}
	item.Label = label.String
	item.Quantidade = total.Int64
	return item, nil
}

func (r *analyticsRepository) VulnerabilityCounts(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error) {
	return queryList(ctx, r.conn, "vulnerabilidades", labeledViewQuery(viewVulnerabilities, "vulnerability", filters), scanLabeledCount)
}

func (r *analyticsRepository) AgeDistribution(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error) {
	return queryList(ctx, r.conn, "faixa etária", ageDistributionQuery(filters), scanLabeledCount)
}

func (r *analyticsRepository) NeighborhoodCounts(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error) {
	return queryList(ctx, r.conn, "bairros", labeledViewQuery(viewNeighborhoods, "neighborhood", filters), scanLabeledCount)
}

func (r *analyticsRepository) ActionPlanStatus(ctx context.Context, filters domain.QueryFilters) ([]domain.LabeledCount, error) {
	return queryList(ctx, r.conn, "status do plano de ação", labeledViewQuery(viewActionItemsStatusCount, "status", filters), scanLabeledCount)
}

func (r *analyticsRepository) ProjectCapacity(ctx context.Context, filters domain.QueryFilters) ([]domain.ProjectCapacity, error) {
	return queryList(ctx, r.conn, "capacidade por projeto", projectCapacityQuery(filters), func(rows *sql.Rows) (domain.ProjectCapacity, error) {
		var (
			item      domain.ProjectCapacity
			occupancy sql.NullFloat64
		)
		if err := rows.Scan(&item.ProjetoID, &item.Projeto, &item.Vagas, &item.Ocupadas, &occupancy); err != nil {
			return item, err
		}
		item.Ocupacao = nullableFloat(occupancy)
		return item, nil
	})
}

func (r *analyticsRepository) AtRiskEnrollments(ctx context.Context, filters domain.QueryFilters) ([]domain.AtRiskEnrollment, error) {
	return queryList(ctx, r.conn, "risco de evasão", atRiskQuery(filters), func(rows *sql.Rows) (domain.AtRiskEnrollment, error) {
		var (
			item domain.AtRiskEnrollment
			rate sql.NullFloat64
		)
		if err := rows.Scan(&item.MatriculaID, &item.BeneficiariaID, &item.Beneficiaria, &item.Projeto, &item.Turma, &rate); err != nil {
			return item, err
		}
		item.Assiduidade = nullableFloat(rate)
		return item, nil
	})
}

func (r *analyticsRepository) PendingConsents(ctx context.Context, filters domain.QueryFilters) ([]domain.PendingConsent, error) {
	return queryList(ctx, r.conn, "lista de consentimentos pendentes", pendingConsentsListQuery(filters), func(rows *sql.Rows) (domain.PendingConsent, error) {
		var item domain.PendingConsent
		err := rows.Scan(&item.BeneficiariaID, &item.Beneficiaria, &item.Projeto)
		return item, err
	})
}

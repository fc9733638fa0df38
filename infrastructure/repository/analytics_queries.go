package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/imm/dashboard-api/internal/domain"
)

const (
	enrollmentsTable  = "enrollments e"
	beneficiaryTable  = "beneficiaries b"
	joinCohorts       = "cohorts c ON c.id = e.cohort_id"
	joinProjects      = "projects p ON p.id = c.project_id"
	joinBeneficiaries = "beneficiaries b ON b.id = e.beneficiary_id"

	enrollmentStatusActive = "active"
	consentTypeLGPD        = "lgpd"

	// Limite da lista de consentimentos pendentes no overview
	PendingConsentsLimit = 20
)

// Funções e views mantidas no banco
const (
	fnSeriesNewBeneficiaries   = "imm_series_new_beneficiaries"
	fnSeriesNewEnrollments     = "imm_series_new_enrollments"
	fnSeriesAttendance         = "imm_series_attendance"
	fnAttendanceByCohort       = "imm_attendance_rate_by_cohort"
	fnAttendanceByEnrollment   = "imm_attendance_rate_by_enrollment"
	fnAgeDistribution          = "imm_age_distribution"
	viewVulnerabilities        = "view_vulnerabilities_counts"
	viewNeighborhoods          = "view_neighborhood_counts"
	viewProjectCapacity        = "view_project_capacity_utilization"
	viewActionItemsStatusCount = "view_action_items_status_counts"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// projectPredicate traduz o filtro de projeto já resolvido. Retorna nil quando não há restrição.
func projectPredicate(column string, filter domain.ProjectFilter) squirrel.Sqlizer {
	switch filter.Mode {
	case domain.ProjectFilterSingle:
		return squirrel.Eq{column: filter.IDs[0]}
	case domain.ProjectFilterList:
		return squirrel.Eq{column: filter.IDs}
	default:
		return nil
	}
}

func cohortPredicate(column string, cohortID *string) squirrel.Sqlizer {
	if cohortID == nil {
		return nil
	}
	return squirrel.Eq{column: *cohortID}
}

// scopePredicates junta as restrições de projeto e turma aplicáveis
func scopePredicates(projectColumn, cohortColumn string, f domain.QueryFilters) squirrel.And {
	predicates := squirrel.And{}

	if p := projectPredicate(projectColumn, f.Project); p != nil {
		predicates = append(predicates, p)
	}

	if cohortColumn != "" {
		if p := cohortPredicate(cohortColumn, f.CohortID); p != nil {
			predicates = append(predicates, p)
		}
	}

	return predicates
}

func whereAll(builder squirrel.SelectBuilder, predicates squirrel.And) squirrel.SelectBuilder {
	for _, p := range predicates {
		builder = builder.Where(p)
	}
	return builder
}

func rangeArgs(f domain.QueryFilters) (string, string) {
	return f.Range.From.Format(domain.DateLayout), f.Range.To.Format(domain.DateLayout)
}

// activeDuringWindow: matrícula ativa que começou até o fim da janela e não terminou antes do início
func activeDuringWindow(f domain.QueryFilters) squirrel.Sqlizer {
	from, to := rangeArgs(f)

	return squirrel.And{
		squirrel.Eq{"e.status": enrollmentStatusActive},
		squirrel.LtOrEq{"e.start_date": to},
		squirrel.Or{
			squirrel.Eq{"e.end_date": nil},
			squirrel.GtOrEq{"e.end_date": from},
		},
	}
}

func pendingConsentPredicate() squirrel.Sqlizer {
	return squirrel.Expr(
		"NOT EXISTS (SELECT 1 FROM consents cs WHERE cs.beneficiary_id = e.beneficiary_id AND cs.type = ? AND cs.granted AND cs.revoked_at IS NULL)",
		consentTypeLGPD,
	)
}

// windowPrefix declara a janela uma única vez para as funções do banco
func windowPrefix(f domain.QueryFilters, withInterval bool) (string, []interface{}) {
	from, to := rangeArgs(f)

	if withInterval {
		return "WITH janela AS (SELECT ?::date AS inicio, ?::date AS fim, ?::text AS intervalo)",
			[]interface{}{from, to, string(f.Interval)}
	}

	return "WITH janela AS (SELECT ?::date AS inicio, ?::date AS fim)", []interface{}{from, to}
}

func activeBeneficiariesQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select("COUNT(DISTINCT e.beneficiary_id)").
		From(enrollmentsTable).
		Join(joinCohorts).
		Where(activeDuringWindow(f))

	return whereAll(builder, scopePredicates("c.project_id", "e.cohort_id", f))
}

func activeEnrollmentsQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select("COUNT(*)").
		From(enrollmentsTable).
		Join(joinCohorts).
		Where(activeDuringWindow(f))

	return whereAll(builder, scopePredicates("c.project_id", "e.cohort_id", f))
}

// newBeneficiariesQuery conta cadastros na janela; com filtro de projeto ou turma
// só entram beneficiárias com matrícula no recorte
func newBeneficiariesQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	from, _ := rangeArgs(f)
	until := f.Range.To.AddDate(0, 0, 1).Format(domain.DateLayout)

	builder := psql.
		Select("COUNT(DISTINCT b.id)").
		From(beneficiaryTable).
		Where(squirrel.GtOrEq{"b.created_at": from}).
		Where(squirrel.Lt{"b.created_at": until})

	predicates := scopePredicates("c.project_id", "e.cohort_id", f)
	if len(predicates) == 0 {
		return builder
	}

	builder = builder.
		Join("enrollments e ON e.beneficiary_id = b.id").
		Join(joinCohorts)

	return whereAll(builder, predicates)
}

func pendingConsentsCountQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select("COUNT(DISTINCT e.beneficiary_id)").
		From(enrollmentsTable).
		Join(joinCohorts).
		Where(activeDuringWindow(f)).
		Where(pendingConsentPredicate())

	return whereAll(builder, scopePredicates("c.project_id", "e.cohort_id", f))
}

func averageAttendanceQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	prefix, args := windowPrefix(f, false)

	builder := psql.
		Select("AVG(r.rate)::float8").
		Prefix(prefix, args...).
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim) r", fnAttendanceByCohort))

	return whereAll(builder, scopePredicates("r.project_id", "r.cohort_id", f))
}

// seriesQuery preenche todos os buckets da janela; buckets sem dados voltam com v nulo.
// aggregate é SUM para contagens e AVG para taxas.
func seriesQuery(function, aggregate string, f domain.QueryFilters) (squirrel.SelectBuilder, error) {
	prefix, prefixArgs := windowPrefix(f, true)

	data := squirrel.
		Select("s.bucket", "s.v").
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim, janela.intervalo) s", function))
	data = whereAll(data, scopePredicates("s.project_id", "s.cohort_id", f))

	dataSQL, dataArgs, err := data.ToSql()
	if err != nil {
		return squirrel.SelectBuilder{}, fmt.Errorf("erro ao construir a série %s: %w", function, err)
	}

	args := append(prefixArgs, dataArgs...)

	return psql.
		Select("to_char(b.bucket, 'YYYY-MM-DD') AS t", fmt.Sprintf("%s(d.v)::float8 AS v", aggregate)).
		Prefix(prefix+", dados AS ("+dataSQL+")", args...).
		From("janela").
		JoinClause("CROSS JOIN LATERAL generate_series(date_trunc(janela.intervalo, janela.inicio::timestamp), janela.fim::timestamp, ('1 ' || janela.intervalo)::interval) AS b(bucket)").
		LeftJoin("dados d ON d.bucket = b.bucket::date").
		GroupBy("b.bucket").
		OrderBy("b.bucket"), nil
}

func attendanceByProjectQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	prefix, args := windowPrefix(f, false)

	builder := psql.
		Select("r.project_id", "r.project_name", "AVG(r.rate)::float8").
		Prefix(prefix, args...).
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim) r", fnAttendanceByCohort))

	return whereAll(builder, scopePredicates("r.project_id", "r.cohort_id", f)).
		GroupBy("r.project_id", "r.project_name").
		OrderBy("r.project_name")
}

func attendanceByCohortQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	prefix, args := windowPrefix(f, false)

	builder := psql.
		Select("r.cohort_id", "r.cohort_name", "r.project_name", "r.rate::float8").
		Prefix(prefix, args...).
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim) r", fnAttendanceByCohort))

	return whereAll(builder, scopePredicates("r.project_id", "r.cohort_id", f)).
		OrderBy("r.project_name", "r.cohort_name")
}

func ageDistributionQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	prefix, args := windowPrefix(f, false)

	builder := psql.
		Select("a.age_range", "SUM(a.total)::bigint").
		Prefix(prefix, args...).
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim) a", fnAgeDistribution))

	return whereAll(builder, scopePredicates("a.project_id", "a.cohort_id", f)).
		GroupBy("a.age_range").
		OrderBy("a.age_range")
}

// labeledViewQuery soma as contagens de uma view por rótulo; views só têm recorte por projeto
func labeledViewQuery(view, labelColumn string, f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select("v."+labelColumn, "SUM(v.total)::bigint AS total").
		From(view + " v")

	return whereAll(builder, scopePredicates("v.project_id", "", f)).
		GroupBy("v." + labelColumn).
		OrderBy("total DESC", "v."+labelColumn)
}

func projectCapacityQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select(
			"v.project_id",
			"v.project_name",
			"SUM(v.capacity)::bigint",
			"SUM(v.occupied)::bigint",
			"CASE WHEN SUM(v.capacity) > 0 THEN SUM(v.occupied)::float8 / SUM(v.capacity) END",
		).
		From(viewProjectCapacity + " v")

	return whereAll(builder, scopePredicates("v.project_id", "", f)).
		GroupBy("v.project_id", "v.project_name").
		OrderBy("v.project_name")
}

// atRiskQuery já ordena e limita no banco; o serviço reaplica a regra sobre as linhas lidas
func atRiskQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	prefix, args := windowPrefix(f, false)

	builder := psql.
		Select(
			"r.enrollment_id",
			"b.id",
			"b.full_name",
			"p.name",
			"c.name",
			"r.rate::float8",
		).
		Prefix(prefix, args...).
		From("janela").
		JoinClause(fmt.Sprintf("CROSS JOIN LATERAL %s(janela.inicio, janela.fim) r", fnAttendanceByEnrollment)).
		Join("beneficiaries b ON b.id = r.beneficiary_id").
		Join("cohorts c ON c.id = r.cohort_id").
		Join(joinProjects).
		Where("r.rate IS NOT NULL")

	return whereAll(builder, scopePredicates("r.project_id", "r.cohort_id", f)).
		OrderBy("r.rate ASC", "b.full_name").
		Limit(domain.AtRiskLimit)
}

func pendingConsentsListQuery(f domain.QueryFilters) squirrel.SelectBuilder {
	builder := psql.
		Select("b.id", "b.full_name", "p.name").
		Distinct().
		From(enrollmentsTable).
		Join(joinBeneficiaries).
		Join(joinCohorts).
		Join(joinProjects).
		Where(activeDuringWindow(f)).
		Where(pendingConsentPredicate())

	return whereAll(builder, scopePredicates("c.project_id", "e.cohort_id", f)).
		OrderBy("b.full_name", "p.name").
		Limit(PendingConsentsLimit)
}

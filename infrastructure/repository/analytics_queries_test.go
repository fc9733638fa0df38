package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imm/dashboard-api/internal/domain"
)

func strPtr(s string) *string { return &s }

var january = domain.DateRange{
	From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
}

func filtersFor(projectID *string, allowed []string, cohortID *string) domain.QueryFilters {
	return domain.NewQueryFilters(january, domain.OverviewFilters{
		ProjectID:         projectID,
		CohortID:          cohortID,
		AllowedProjectIDs: allowed,
	})
}

func TestActiveBeneficiariesQuery_ProjectPrecedence(t *testing.T) {
	tests := []struct {
		name         string
		filters      domain.QueryFilters
		wantFragment string
		notFragment  string
		wantArgs     []interface{}
	}{
		{
			name:         "projeto explícito vence a lista do escopo",
			filters:      filtersFor(strPtr("P1"), []string{"P1", "P2"}, nil),
			wantFragment: "AND c.project_id = $4",
			notFragment:  " IN (",
			wantArgs:     []interface{}{"active", "2024-01-30", "2024-01-01", "P1"},
		},
		{
			name:         "lista do escopo quando não há projeto",
			filters:      filtersFor(nil, []string{"P1", "P2"}, nil),
			wantFragment: "AND c.project_id IN ($4,$5)",
			wantArgs:     []interface{}{"active", "2024-01-30", "2024-01-01", "P1", "P2"},
		},
		{
			name:        "sem restrição",
			filters:     filtersFor(nil, nil, nil),
			notFragment: "project_id",
			wantArgs:    []interface{}{"active", "2024-01-30", "2024-01-01"},
		},
		{
			name:         "projeto vazio cai para a lista",
			filters:      filtersFor(strPtr(""), []string{"P2"}, nil),
			wantFragment: "AND c.project_id IN ($4)",
			wantArgs:     []interface{}{"active", "2024-01-30", "2024-01-01", "P2"},
		},
		{
			name:         "turma junto com projeto",
			filters:      filtersFor(strPtr("P1"), nil, strPtr("T9")),
			wantFragment: "AND c.project_id = $4 AND e.cohort_id = $5",
			wantArgs:     []interface{}{"active", "2024-01-30", "2024-01-01", "P1", "T9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := activeBeneficiariesQuery(tt.filters).ToSql()
			require.NoError(t, err)

			assert.Contains(t, query, "SELECT COUNT(DISTINCT e.beneficiary_id) FROM enrollments e JOIN cohorts c ON c.id = e.cohort_id")
			assert.Contains(t, query, "e.status = $1 AND e.start_date <= $2 AND (e.end_date IS NULL OR e.end_date >= $3)")
			if tt.wantFragment != "" {
				assert.Contains(t, query, tt.wantFragment)
			}
			if tt.notFragment != "" {
				assert.NotContains(t, query, tt.notFragment)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestActiveEnrollmentsQuery_CountsRows(t *testing.T) {
	query, _, err := activeEnrollmentsQuery(filtersFor(nil, nil, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT COUNT(*) FROM enrollments e")
}

func TestNewBeneficiariesQuery(t *testing.T) {
	query, args, err := newBeneficiariesQuery(filtersFor(nil, nil, nil)).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "JOIN")
	assert.Contains(t, query, "b.created_at >= $1 AND b.created_at < $2")
	// o fim da janela é inclusivo
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-31"}, args)

	query, args, err = newBeneficiariesQuery(filtersFor(nil, []string{"P1", "P2"}, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN enrollments e ON e.beneficiary_id = b.id JOIN cohorts c ON c.id = e.cohort_id")
	assert.Contains(t, query, "c.project_id IN ($3,$4)")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-31", "P1", "P2"}, args)
}

func TestPendingConsentsCountQuery(t *testing.T) {
	query, args, err := pendingConsentsCountQuery(filtersFor(strPtr("P1"), nil, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "NOT EXISTS (SELECT 1 FROM consents cs WHERE cs.beneficiary_id = e.beneficiary_id AND cs.type = $4 AND cs.granted AND cs.revoked_at IS NULL)")
	assert.Equal(t, []interface{}{"active", "2024-01-30", "2024-01-01", "lgpd", "P1"}, args)
}

func TestAverageAttendanceQuery(t *testing.T) {
	query, args, err := averageAttendanceQuery(filtersFor(nil, []string{"P2"}, strPtr("T1"))).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WITH janela AS (SELECT $1::date AS inicio, $2::date AS fim) SELECT AVG(r.rate)::float8 FROM janela CROSS JOIN LATERAL imm_attendance_rate_by_cohort(janela.inicio, janela.fim) r")
	assert.Contains(t, query, "r.project_id IN ($3) AND r.cohort_id = $4")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-30", "P2", "T1"}, args)
}

func TestSeriesQuery(t *testing.T) {
	filters := filtersFor(nil, []string{"P1", "P2"}, nil)
	filters.Interval = domain.IntervalWeek

	builder, err := seriesQuery(fnSeriesNewEnrollments, "SUM", filters)
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WITH janela AS (SELECT $1::date AS inicio, $2::date AS fim, $3::text AS intervalo), dados AS (SELECT s.bucket, s.v FROM janela CROSS JOIN LATERAL imm_series_new_enrollments(janela.inicio, janela.fim, janela.intervalo) s WHERE s.project_id IN ($4,$5))")
	assert.Contains(t, query, "SUM(d.v)::float8 AS v")
	assert.Contains(t, query, "LEFT JOIN dados d ON d.bucket = b.bucket::date")
	assert.Contains(t, query, "ORDER BY b.bucket")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-30", "week", "P1", "P2"}, args)
}

func TestSeriesQuery_AttendanceUsesAverage(t *testing.T) {
	builder, err := seriesQuery(fnSeriesAttendance, "AVG", filtersFor(nil, nil, nil))
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "imm_series_attendance(janela.inicio, janela.fim, janela.intervalo) s)")
	assert.Contains(t, query, "AVG(d.v)::float8 AS v")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-30", "day"}, args)
}

func TestLabeledViewQuery_IgnoresCohort(t *testing.T) {
	query, args, err := labeledViewQuery(viewNeighborhoods, "neighborhood", filtersFor(strPtr("P1"), nil, strPtr("T1"))).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT v.neighborhood, SUM(v.total)::bigint AS total FROM view_neighborhood_counts v WHERE v.project_id = $1 GROUP BY v.neighborhood ORDER BY total DESC, v.neighborhood", query)
	assert.Equal(t, []interface{}{"P1"}, args)
}

func TestProjectCapacityQuery(t *testing.T) {
	query, args, err := projectCapacityQuery(filtersFor(nil, nil, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM view_project_capacity_utilization v GROUP BY v.project_id, v.project_name")
	assert.Empty(t, args)
}

func TestAtRiskQuery(t *testing.T) {
	query, args, err := atRiskQuery(filtersFor(strPtr("P1"), []string{"P1", "P2"}, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "imm_attendance_rate_by_enrollment(janela.inicio, janela.fim) r")
	assert.Contains(t, query, "WHERE r.rate IS NOT NULL AND r.project_id = $3")
	assert.Contains(t, query, "ORDER BY r.rate ASC, b.full_name LIMIT 10")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-30", "P1"}, args)
}

func TestPendingConsentsListQuery(t *testing.T) {
	query, args, err := pendingConsentsListQuery(filtersFor(nil, nil, nil)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT DISTINCT b.id, b.full_name, p.name FROM enrollments e")
	assert.Contains(t, query, "ORDER BY b.full_name, p.name LIMIT 20")
	assert.Equal(t, []interface{}{"active", "2024-01-30", "2024-01-01", "lgpd"}, args)
}

func TestUserSelect(t *testing.T) {
	query, args, err := userSelect().Where("email = ?", "ana@imm.org").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, email, password_hash, active, roles, project_scope, permissions, created_at, updated_at FROM users WHERE email = $1", query)
	assert.Equal(t, []interface{}{"ana@imm.org"}, args)
}

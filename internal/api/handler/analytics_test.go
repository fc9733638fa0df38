package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imm/dashboard-api/internal/api/handler/router"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	analyticsMocks "github.com/imm/dashboard-api/internal/usecases/analytics/mocks"
	"github.com/imm/dashboard-api/internal/usecases/exporting"
	exportingMocks "github.com/imm/dashboard-api/internal/usecases/exporting/mocks"
	"github.com/imm/dashboard-api/pkg/apiErrors"
	"github.com/imm/dashboard-api/pkg/middleware"
)

const (
	projectA = "7f1c2a9e-3b1d-4c5e-9a8b-1d2e3f4a5b6c"
	projectB = "0a9b8c7d-6e5f-4a3b-2c1d-0e9f8a7b6c5d"
)

var (
	adminClaims = &domain.Claims{
		UserID:      "admin-1",
		Roles:       []string{domain.RoleAdmin},
		Permissions: []string{domain.PermissionAnalyticsRead},
	}
	educadoraClaims = &domain.Claims{
		UserID:       "edu-1",
		Roles:        []string{domain.RoleEducadora},
		ProjectScope: []string{projectA},
		Permissions:  []string{domain.PermissionAnalyticsReadProject},
	}
)

// withClaims simula o AuthMiddleware gravando as claims antes do router
func withClaims(routes []router.Route, claims *domain.Claims) http.Handler {
	rt := router.New(router.WithRoutes(routes...))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims != nil {
			r = r.WithContext(middleware.WithClaims(r.Context(), claims))
		}
		rt.ServeHTTP(w, r)
	})
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// firstInvalidField extrai details.fields[0].field da resposta de erro
func firstInvalidField(t *testing.T, body apiErrors.APIError) string {
	t.Helper()
	details, ok := body.Details.(map[string]any)
	require.True(t, ok, "details ausente")
	fields, ok := details["fields"].([]any)
	require.True(t, ok, "details.fields ausente")
	require.NotEmpty(t, fields)
	field, ok := fields[0].(map[string]any)
	require.True(t, ok)
	return field["field"].(string)
}

func sampleOverview() *domain.OverviewResponse {
	rate := 87.5
	return &domain.OverviewResponse{
		KPIs: domain.KPIs{BeneficiariasAtivas: 10, AssiduidadeMedia: &rate},
	}
}

func TestGetAnalyticsOverview(t *testing.T) {
	t.Run("admin consulta sem restrição de escopo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
				require.NotNil(t, filters.From)
				assert.Equal(t, "2024-01-01", *filters.From)
				assert.Equal(t, "2024-01-30", *filters.To)
				assert.Nil(t, filters.ProjectID)
				assert.Nil(t, filters.AllowedProjectIDs)
				assert.Equal(t, "all", filters.ScopeKey)
				assert.Equal(t, domain.IntervalDay, filters.Interval)
				return sampleOverview(), nil
			})

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview?from=2024-01-01&to=2024-01-30")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body domain.OverviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(10), body.KPIs.BeneficiariasAtivas)
		require.NotNil(t, body.KPIs.AssiduidadeMedia)
		assert.Equal(t, 87.5, *body.KPIs.AssiduidadeMedia)
	})

	t.Run("educadora recebe o escopo dos seus projetos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
				assert.Equal(t, []string{projectA}, filters.AllowedProjectIDs)
				assert.Equal(t, projectA, filters.ScopeKey)
				return sampleOverview(), nil
			})

		h := withClaims(Analytics(service, nil), educadoraClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("data em formato inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview?from=2024-13-01")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidRequest, body.Code)
		assert.Equal(t, "from", firstInvalidField(t, body))
	})

	t.Run("projectId que não é UUID", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview?projectId=abc")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "projectId", firstInvalidField(t, decodeAPIError(t, rec)))
	})

	t.Run("período invertido vira 400 com o campo from", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		from, to := "2024-02-01", "2024-01-01"
		_, rangeErr := analytics.ResolveDateRange(&from, &to, time.Now())
		require.Error(t, rangeErr)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).Return(nil, rangeErr)

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview?from=2024-02-01&to=2024-01-01")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidDateRange, body.Code)
		assert.Equal(t, "from", firstInvalidField(t, body))
	})

	t.Run("projeto fora do escopo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		h := withClaims(Analytics(service, nil), educadoraClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview?projectId="+projectB)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrScopeViolation, decodeAPIError(t, rec).Code)
	})

	t.Run("sem permissão de leitura", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		claims := &domain.Claims{UserID: "u1", Roles: []string{domain.RoleAdmin}}
		h := withClaims(Analytics(service, nil), claims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview")

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
	})

	t.Run("falha interna não expõe detalhes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).
			Return(nil, errors.New(`pq: relation "presencas" does not exist`))

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/overview")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrInternalServer, body.Code)
		assert.Equal(t, "Erro ao calcular indicadores", body.Message)
		assert.NotContains(t, rec.Body.String(), "presencas")
	})
}

func TestGetAnalyticsTimeseries(t *testing.T) {
	t.Run("métrica e intervalo repassados ao serviço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		value := 2.0
		service.EXPECT().GetTimeseries(gomock.Any(), domain.MetricMatriculas, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filters domain.OverviewFilters) ([]domain.SeriesPoint, error) {
				assert.Equal(t, domain.IntervalWeek, filters.Interval)
				return []domain.SeriesPoint{{T: "2024-01-01", V: &value}, {T: "2024-01-08"}}, nil
			})

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/timeseries?metric=matriculas&interval=week")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"t":"2024-01-01","v":2},{"t":"2024-01-08","v":null}]}`, rec.Body.String())
	})

	t.Run("intervalo padrão é dia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		service.EXPECT().GetTimeseries(gomock.Any(), domain.MetricAssiduidade, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filters domain.OverviewFilters) ([]domain.SeriesPoint, error) {
				assert.Equal(t, domain.IntervalDay, filters.Interval)
				return []domain.SeriesPoint{}, nil
			})

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/timeseries?metric=assiduidade")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	})

	tests := []struct {
		name      string
		target    string
		wantField string
	}{
		{name: "métrica desconhecida", target: "/analytics/timeseries?metric=presencas", wantField: "metric"},
		{name: "métrica ausente", target: "/analytics/timeseries", wantField: "metric"},
		{name: "intervalo desconhecido", target: "/analytics/timeseries?metric=matriculas&interval=year", wantField: "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := analyticsMocks.NewMockAnalyzer(ctrl)

			h := withClaims(Analytics(service, nil), adminClaims)
			rec := serve(t, h, http.MethodGet, tt.target)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeAPIError(t, rec)
			assert.Equal(t, apiErrors.ErrInvalidRequest, body.Code)
			assert.Equal(t, tt.wantField, firstInvalidField(t, body))
		})
	}
}

func TestGetProjectAnalytics(t *testing.T) {
	t.Run("projeto do caminho substitui projectId", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		service.EXPECT().GetProjectAnalytics(gomock.Any(), projectA, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
				assert.Nil(t, filters.ProjectID)
				return sampleOverview(), nil
			})

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/projects/"+projectA+"?projectId="+projectB)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("id inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		h := withClaims(Analytics(service, nil), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/projects/abc")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id", firstInvalidField(t, decodeAPIError(t, rec)))
	})

	t.Run("educadora só acessa os próprios projetos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)

		h := withClaims(Analytics(service, nil), educadoraClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/projects/"+projectB)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrScopeViolation, decodeAPIError(t, rec).Code)
	})
}

func TestExportAnalytics(t *testing.T) {
	t.Run("csv com cabeçalhos de download", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		overview := sampleOverview()
		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).Return(overview, nil)
		exporter.EXPECT().Export(gomock.Any(), exporting.FormatCSV, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ exporting.Format, report exporting.Report) (*exporting.Artifact, error) {
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), report.Range.From)
				assert.Equal(t, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), report.Range.To)
				assert.Same(t, overview, report.Overview)
				return &exporting.Artifact{
					ContentType: "text/csv; charset=utf-8",
					Extension:   "csv",
					Body:        []byte("Indicador,Valor\n"),
				}, nil
			})

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export?from=2024-01-01&to=2024-01-30")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Regexp(t, regexp.MustCompile(`^attachment; filename="analytics-\d{4}-\d{2}-\d{2}\.csv"$`), rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Indicador,Valor\n", rec.Body.String())
	})

	t.Run("formato explícito", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).Return(sampleOverview(), nil)
		exporter.EXPECT().Export(gomock.Any(), exporting.FormatXLSX, gomock.Any()).
			Return(&exporting.Artifact{ContentType: "application/octet-stream", Extension: "xlsx", Body: []byte("PK")}, nil)

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export?format=xlsx")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `.xlsx"`)
	})

	t.Run("período padrão resolvido uma única vez", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		var queried domain.OverviewFilters
		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filters domain.OverviewFilters) (*domain.OverviewResponse, error) {
				queried = filters
				return sampleOverview(), nil
			})
		exporter.EXPECT().Export(gomock.Any(), exporting.FormatCSV, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ exporting.Format, report exporting.Report) (*exporting.Artifact, error) {
				require.NotNil(t, queried.From)
				require.NotNil(t, queried.To)
				assert.Equal(t, report.Range.From.Format(domain.DateLayout), *queried.From)
				assert.Equal(t, report.Range.To.Format(domain.DateLayout), *queried.To)
				assert.Equal(t, 29*24*time.Hour, report.Range.To.Sub(report.Range.From))
				return &exporting.Artifact{ContentType: "text/csv; charset=utf-8", Extension: "csv"}, nil
			})

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("formato desconhecido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export?format=doc")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "format", firstInvalidField(t, decodeAPIError(t, rec)))
	})

	t.Run("período invertido não consulta o serviço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export?from=2024-02-01&to=2024-01-01")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidDateRange, decodeAPIError(t, rec).Code)
	})

	t.Run("falha ao renderizar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := analyticsMocks.NewMockAnalyzer(ctrl)
		exporter := exportingMocks.NewMockExporter(ctrl)

		service.EXPECT().GetOverview(gomock.Any(), gomock.Any()).Return(sampleOverview(), nil)
		exporter.EXPECT().Export(gomock.Any(), exporting.FormatPDF, gomock.Any()).
			Return(nil, exporting.NewExportError(exporting.ErrRenderFailed, "exit status 1"))

		h := withClaims(Analytics(service, exporter), adminClaims)
		rec := serve(t, h, http.MethodGet, "/analytics/export?format=pdf")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeAPIError(t, rec)
		assert.Equal(t, apiErrors.ErrExportRender, body.Code)
		assert.NotContains(t, body.Message, "exit status")
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
	})
}

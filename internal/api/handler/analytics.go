package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	"github.com/imm/dashboard-api/internal/usecases/exporting"
	"github.com/imm/dashboard-api/pkg/apiErrors"
	"github.com/imm/dashboard-api/pkg/log"
	"github.com/imm/dashboard-api/pkg/middleware"
	"github.com/imm/dashboard-api/pkg/validation"
)

// AnalyticsQuery são os parâmetros comuns às rotas de analytics
type AnalyticsQuery struct {
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	ProjectID string `query:"projectId" validate:"omitempty,uuid"`
	CohortID  string `query:"cohortId" validate:"omitempty,uuid"`
}

type TimeseriesQuery struct {
	AnalyticsQuery
	Metric   string `query:"metric" validate:"required,oneof=beneficiarias matriculas assiduidade"`
	Interval string `query:"interval" validate:"omitempty,oneof=day week month"`
}

type ExportQuery struct {
	AnalyticsQuery
	Format string `query:"format" validate:"omitempty,oneof=csv pdf xlsx"`
}

type ProjectQuery struct {
	AnalyticsQuery
	ID string `query:"id" validate:"required,uuid"`
}

func parseAnalyticsQuery(r *http.Request) AnalyticsQuery {
	values := r.URL.Query()
	return AnalyticsQuery{
		From:      values.Get("from"),
		To:        values.Get("to"),
		ProjectID: values.Get("projectId"),
		CohortID:  values.Get("cohortId"),
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// filters combina os parâmetros validados com o escopo resolvido para o usuário
func (q AnalyticsQuery) filters(scope *domain.AnalyticsScope) domain.OverviewFilters {
	return domain.OverviewFilters{
		From:              optional(q.From),
		To:                optional(q.To),
		ProjectID:         optional(q.ProjectID),
		CohortID:          optional(q.CohortID),
		Interval:          domain.IntervalDay,
		AllowedProjectIDs: scope.AllowedProjectIDs,
		ScopeKey:          scope.ScopeKey,
	}
}

// validateQuery responde 400 com os erros por campo e devolve false quando a struct é inválida
func validateQuery(w http.ResponseWriter, r *http.Request, query any) bool {
	verr := validation.ValidateStruct(query)
	if verr == nil {
		return true
	}

	log.ForContext(r.Context()).WithField("error", verr.Error()).Warn("analytics: parâmetros inválidos")
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetros inválidos", verr.Details())
	return false
}

// resolveScope aplica as regras de escopo do usuário autenticado ao projeto pedido
func resolveScope(w http.ResponseWriter, r *http.Request, projectID string) (*domain.AnalyticsScope, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	scope, err := analytics.ResolveScope(claims, optional(projectID))
	if err != nil {
		writeAnalyticsError(w, r, err)
		return nil, false
	}

	return scope, true
}

// writeAnalyticsError converte o erro do serviço na resposta HTTP.
// Falhas internas não expõem detalhes de consulta ao cliente.
func writeAnalyticsError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context())

	switch {
	case analytics.IsValidationError(err):
		field := "from"
		var analyticsErr *analytics.AnalyticsError
		if errors.As(err, &analyticsErr) && analyticsErr.Field != "" {
			field = analyticsErr.Field
		}

		logger.WithField("error", err.Error()).Warn("analytics: período inválido")
		apiErrors.WriteError(w, analytics.ErrorCode(err), "Parâmetros inválidos", map[string]any{
			"fields": []validation.FieldError{{Field: field, Tag: "date", Message: err.Error()}},
		})

	case analytics.IsAuthorizationError(err):
		claims, _ := middleware.ClaimsFromContext(r.Context())
		fields := log.Fields{"error": err.Error()}
		if claims != nil {
			fields["user_id"] = claims.UserID
		}
		logger.WithFields(fields).Warn("analytics: acesso negado")
		apiErrors.WriteError(w, analytics.ErrorCode(err), err.Error(), nil)

	default:
		logger.WithError(err).Error("analytics: falha ao calcular indicadores")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular indicadores", nil)
	}
}

func GetAnalyticsOverview(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := parseAnalyticsQuery(r)
		if !validateQuery(w, r, query) {
			return
		}

		scope, ok := resolveScope(w, r, query.ProjectID)
		if !ok {
			return
		}

		log.ForContext(r.Context()).WithField("scope_key", scope.ScopeKey).Debug("analytics: overview")

		overview, err := service.GetOverview(r.Context(), query.filters(scope))
		if err != nil {
			writeAnalyticsError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	})
}

func GetAnalyticsTimeseries(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := TimeseriesQuery{
			AnalyticsQuery: parseAnalyticsQuery(r),
			Metric:         r.URL.Query().Get("metric"),
			Interval:       r.URL.Query().Get("interval"),
		}
		if !validateQuery(w, r, query) {
			return
		}

		scope, ok := resolveScope(w, r, query.ProjectID)
		if !ok {
			return
		}

		interval, _ := domain.ParseInterval(query.Interval)
		filters := query.filters(scope)
		filters.Interval = interval

		log.ForContext(r.Context()).WithFields(log.Fields{
			"metric":    query.Metric,
			"scope_key": scope.ScopeKey,
		}).Debug("analytics: timeseries")

		points, err := service.GetTimeseries(r.Context(), query.Metric, filters)
		if err != nil {
			writeAnalyticsError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"data": points})
	})
}

func GetProjectAnalytics(service analytics.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := ProjectQuery{
			AnalyticsQuery: parseAnalyticsQuery(r),
			ID:             httprouter.ParamsFromContext(r.Context()).ByName("id"),
		}
		// o projeto do caminho substitui projectId da query
		query.ProjectID = ""
		if !validateQuery(w, r, query) {
			return
		}

		scope, ok := resolveScope(w, r, query.ID)
		if !ok {
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"project_id": query.ID,
			"scope_key":  scope.ScopeKey,
		}).Debug("analytics: projeto")

		overview, err := service.GetProjectAnalytics(r.Context(), query.ID, query.filters(scope))
		if err != nil {
			writeAnalyticsError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	})
}

func ExportAnalytics(service analytics.Analyzer, exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := ExportQuery{
			AnalyticsQuery: parseAnalyticsQuery(r),
			Format:         r.URL.Query().Get("format"),
		}
		if !validateQuery(w, r, query) {
			return
		}

		format, err := exporting.ParseFormat(query.Format)
		if err != nil {
			apiErrors.WriteError(w, exporting.ErrorCode(err), err.Error(), nil)
			return
		}

		scope, ok := resolveScope(w, r, query.ProjectID)
		if !ok {
			return
		}

		now := time.Now().UTC()
		filters := query.filters(scope)

		dateRange, err := analytics.ResolveDateRange(filters.From, filters.To, now)
		if err != nil {
			writeAnalyticsError(w, r, err)
			return
		}

		// o período do cabeçalho e o dos dados precisam ser o mesmo
		from := dateRange.From.Format(domain.DateLayout)
		to := dateRange.To.Format(domain.DateLayout)
		filters.From, filters.To = &from, &to

		overview, err := service.GetOverview(r.Context(), filters)
		if err != nil {
			writeAnalyticsError(w, r, err)
			return
		}

		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"format":    string(format),
			"scope_key": scope.ScopeKey,
		})

		artifact, err := exporter.Export(r.Context(), format, exporting.Report{
			Range:       dateRange,
			Overview:    overview,
			GeneratedAt: now,
		})
		if err != nil {
			logger.WithError(err).Error("analytics: falha ao gerar exportação")
			apiErrors.WriteError(w, exporting.ErrorCode(err), "Erro ao gerar arquivo de exportação", nil)
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename(now)+`"`)
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(artifact.Body); err != nil {
			logger.WithError(err).Warn("analytics: erro ao enviar arquivo")
			return
		}

		logger.WithField("bytes", len(artifact.Body)).Info("analytics: exportação enviada")
	})
}

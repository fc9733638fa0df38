// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// Interval define a granularidade das séries temporais
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval converte o parâmetro de consulta, usando "day" quando vazio
func ParseInterval(value string) (Interval, bool) {
	switch Interval(value) {
	case "":
		return IntervalDay, true
	case IntervalDay, IntervalWeek, IntervalMonth:
		return Interval(value), true
	default:
		return IntervalDay, false
	}
}

// Métricas aceitas pelo endpoint de séries temporais
const (
	MetricBeneficiarias = "beneficiarias"
	MetricMatriculas    = "matriculas"
	MetricAssiduidade   = "assiduidade"
)

// DateRange é sempre alinhado à meia-noite UTC
type DateRange struct {
	From time.Time
	To   time.Time
}

// OverviewFilters são montados por requisição a partir dos parâmetros validados e do escopo
type OverviewFilters struct {
	From      *string
	To        *string
	ProjectID *string
	CohortID  *string
	Interval  Interval
	// AllowedProjectIDs nil significa acesso irrestrito
	AllowedProjectIDs []string
	ScopeKey          string
}

// WithProject retorna uma cópia dos filtros com o projeto fixado
func (f OverviewFilters) WithProject(projectID string) OverviewFilters {
	f.ProjectID = &projectID
	return f
}

// AnalyticsScope é derivado uma vez por requisição a partir das claims do usuário
type AnalyticsScope struct {
	AllowedProjectIDs []string `json:"allowed_project_ids"`
	ScopeKey          string   `json:"scope_key"`
}

// SeriesPoint é um ponto de série temporal; V é nulo quando não há dado no intervalo
type SeriesPoint struct {
	T string   `json:"t"`
	V *float64 `json:"v"`
}

type KPIs struct {
	BeneficiariasAtivas     int64    `json:"beneficiarias_ativas"`
	BeneficiariasNovas      int64    `json:"beneficiarias_novas"`
	MatriculasAtivas        int64    `json:"matriculas_ativas"`
	AssiduidadeMedia        *float64 `json:"assiduidade_media"`
	ConsentimentosPendentes int64    `json:"consentimentos_pendentes"`
}

type Series struct {
	BeneficiariasNovas []SeriesPoint `json:"beneficiarias_novas"`
	MatriculasNovas    []SeriesPoint `json:"matriculas_novas"`
	Assiduidade        []SeriesPoint `json:"assiduidade"`
}

type AttendanceByProject struct {
	ProjetoID string   `json:"projeto_id"`
	Projeto   string   `json:"projeto"`
	Taxa      *float64 `json:"taxa"`
}

type AttendanceByCohort struct {
	TurmaID string   `json:"turma_id"`
	Turma   string   `json:"turma"`
	Projeto string   `json:"projeto"`
	Taxa    *float64 `json:"taxa"`
}

// LabeledCount é usado pelas distribuições simples (vulnerabilidades, faixa etária, bairros, status)
type LabeledCount struct {
	Label      string `json:"label"`
	Quantidade int64  `json:"quantidade"`
}

type ProjectCapacity struct {
	ProjetoID string   `json:"projeto_id"`
	Projeto   string   `json:"projeto"`
	Vagas     int64    `json:"vagas"`
	Ocupadas  int64    `json:"ocupadas"`
	Ocupacao  *float64 `json:"ocupacao"`
}

type Categories struct {
	AssiduidadePorProjeto []AttendanceByProject `json:"assiduidade_por_projeto"`
	AssiduidadePorTurma   []AttendanceByCohort  `json:"assiduidade_por_turma"`
	Vulnerabilidades      []LabeledCount        `json:"vulnerabilidades"`
	FaixaEtaria           []LabeledCount        `json:"faixa_etaria"`
	Bairros               []LabeledCount        `json:"bairros"`
	CapacidadeProjetos    []ProjectCapacity     `json:"capacidade_projetos"`
	PlanoAcaoStatus       []LabeledCount        `json:"plano_acao_status"`
}

// AtRiskEnrollment é uma matrícula com baixa assiduidade no período
type AtRiskEnrollment struct {
	MatriculaID    string   `json:"matricula_id"`
	BeneficiariaID string   `json:"beneficiaria_id"`
	Beneficiaria   string   `json:"beneficiaria"`
	Projeto        string   `json:"projeto"`
	Turma          string   `json:"turma"`
	Assiduidade    *float64 `json:"assiduidade"`
}

type PendingConsent struct {
	BeneficiariaID string `json:"beneficiaria_id"`
	Beneficiaria   string `json:"beneficiaria"`
	Projeto        string `json:"projeto"`
}

type Lists struct {
	RiscoEvasao             []AtRiskEnrollment `json:"risco_evasao"`
	ConsentimentosPendentes []PendingConsent   `json:"consentimentos_pendentes"`
}

// OverviewResponse é recalculado por requisição (ou servido do cache) e nunca alterado depois de montado
type OverviewResponse struct {
	KPIs       KPIs       `json:"kpis"`
	Series     Series     `json:"series"`
	Categorias Categories `json:"categorias"`
	Listas     Lists      `json:"listas"`
}

// AtRiskLimit é o tamanho máximo da lista de risco de evasão
const AtRiskLimit = 10

// RankAtRisk descarta matrículas sem assiduidade, ordena da menor para a maior e limita a AtRiskLimit
func RankAtRisk(items []AtRiskEnrollment) []AtRiskEnrollment {
	ranked := make([]AtRiskEnrollment, 0, len(items))
	for _, item := range items {
		if item.Assiduidade != nil {
			ranked = append(ranked, item)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Assiduidade < *ranked[j].Assiduidade
	})

	if len(ranked) > AtRiskLimit {
		ranked = ranked[:AtRiskLimit]
	}

	return ranked
}

package exporting

import (
	"strconv"

	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/utils"
)

// section é uma tabela do relatório; a mesma lista alimenta CSV, PDF e XLSX
type section struct {
	Title  string
	Sheet  string
	Header []string
	Rows   [][]string
}

func formatCount(value int64) string {
	return strconv.FormatInt(value, 10)
}

func seriesSection(title, sheet, valueHeader string, points []domain.SeriesPoint, format func(*float64) string) section {
	rows := make([][]string, 0, len(points))
	for _, point := range points {
		rows = append(rows, []string{point.T, format(point.V)})
	}

	return section{
		Title:  title,
		Sheet:  sheet,
		Header: []string{"Data", valueHeader},
		Rows:   rows,
	}
}

func labeledSection(title, sheet, labelHeader string, items []domain.LabeledCount) section {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Label, formatCount(item.Quantidade)})
	}

	return section{
		Title:  title,
		Sheet:  sheet,
		Header: []string{labelHeader, "Quantidade"},
		Rows:   rows,
	}
}

// buildSections monta as seções na ordem fixa do relatório.
// Consumidores externos leem o CSV pelos títulos, então ordem e textos não mudam.
func buildSections(resp *domain.OverviewResponse) []section {
	kpis := resp.KPIs

	sections := []section{
		{
			Title:  "KPIs",
			Sheet:  "KPIs",
			Header: []string{"Indicador", "Valor"},
			Rows: [][]string{
				{"Beneficiarias ativas", formatCount(kpis.BeneficiariasAtivas)},
				{"Novas beneficiarias", formatCount(kpis.BeneficiariasNovas)},
				{"Matriculas ativas", formatCount(kpis.MatriculasAtivas)},
				{"Assiduidade media", utils.FormatPercent(kpis.AssiduidadeMedia)},
				{"Consentimentos pendentes", formatCount(kpis.ConsentimentosPendentes)},
			},
		},
		seriesSection("Serie - Novas beneficiarias", "Novas beneficiarias", "Valor", resp.Series.BeneficiariasNovas, utils.FormatNullableNumber),
		seriesSection("Serie - Novas matriculas", "Novas matriculas", "Valor", resp.Series.MatriculasNovas, utils.FormatNullableNumber),
		seriesSection("Serie - Assiduidade", "Assiduidade", "Assiduidade (%)", resp.Series.Assiduidade, utils.FormatPercent),
	}

	byProject := section{
		Title:  "Assiduidade por projeto",
		Sheet:  "Assiduidade por projeto",
		Header: []string{"Projeto", "Assiduidade (%)"},
	}
	for _, item := range resp.Categorias.AssiduidadePorProjeto {
		byProject.Rows = append(byProject.Rows, []string{item.Projeto, utils.FormatPercent(item.Taxa)})
	}
	sections = append(sections,
		byProject,
		labeledSection("Vulnerabilidades", "Vulnerabilidades", "Vulnerabilidade", resp.Categorias.Vulnerabilidades),
		labeledSection("Faixa etaria", "Faixa etaria", "Faixa etaria", resp.Categorias.FaixaEtaria),
		labeledSection("Bairros", "Bairros", "Bairro", resp.Categorias.Bairros),
	)

	capacity := section{
		Title:  "Capacidade por projeto",
		Sheet:  "Capacidade",
		Header: []string{"Projeto", "Vagas", "Ocupadas", "Ocupacao (%)"},
	}
	for _, item := range resp.Categorias.CapacidadeProjetos {
		capacity.Rows = append(capacity.Rows, []string{
			item.Projeto,
			formatCount(item.Vagas),
			formatCount(item.Ocupadas),
			utils.FormatPercent(item.Ocupacao),
		})
	}
	sections = append(sections,
		capacity,
		labeledSection("Status do plano de acao", "Plano de acao", "Status", resp.Categorias.PlanoAcaoStatus),
	)

	atRisk := section{
		Title:  "Risco de evasao",
		Sheet:  "Risco de evasao",
		Header: []string{"Beneficiaria", "Projeto", "Turma", "Assiduidade (%)"},
	}
	for _, item := range resp.Listas.RiscoEvasao {
		atRisk.Rows = append(atRisk.Rows, []string{item.Beneficiaria, item.Projeto, item.Turma, utils.FormatPercent(item.Assiduidade)})
	}

	consents := section{
		Title:  "Consentimentos pendentes",
		Sheet:  "Consentimentos pendentes",
		Header: []string{"Beneficiaria", "Projeto"},
	}
	for _, item := range resp.Listas.ConsentimentosPendentes {
		consents.Rows = append(consents.Rows, []string{item.Beneficiaria, item.Projeto})
	}

	return append(sections, atRisk, consents)
}

package domain

// ProjectFilterMode indica como o filtro de projeto deve ser aplicado nas consultas
type ProjectFilterMode int

const (
	// ProjectFilterNone não restringe projetos
	ProjectFilterNone ProjectFilterMode = iota
	// ProjectFilterSingle restringe a um único projeto informado explicitamente
	ProjectFilterSingle
	// ProjectFilterList restringe à lista de projetos do escopo do usuário
	ProjectFilterList
)

func (m ProjectFilterMode) String() string {
	switch m {
	case ProjectFilterSingle:
		return "single"
	case ProjectFilterList:
		return "list"
	default:
		return "none"
	}
}

// ProjectFilter é a restrição de projeto já resolvida
type ProjectFilter struct {
	Mode ProjectFilterMode
	IDs  []string
}

// ResolveProjectFilter aplica a precedência: projeto explícito > lista do escopo (não vazia) > sem restrição
func ResolveProjectFilter(projectID *string, allowedProjectIDs []string) ProjectFilter {
	if projectID != nil && *projectID != "" {
		return ProjectFilter{Mode: ProjectFilterSingle, IDs: []string{*projectID}}
	}

	if len(allowedProjectIDs) > 0 {
		ids := make([]string, len(allowedProjectIDs))
		copy(ids, allowedProjectIDs)
		return ProjectFilter{Mode: ProjectFilterList, IDs: ids}
	}

	return ProjectFilter{Mode: ProjectFilterNone}
}

// QueryFilters é o único formato de filtro que os repositórios recebem
type QueryFilters struct {
	Range    DateRange
	Project  ProjectFilter
	CohortID *string
	Interval Interval
}

// NewQueryFilters combina o período já resolvido com os filtros da requisição
func NewQueryFilters(dateRange DateRange, filters OverviewFilters) QueryFilters {
	interval := filters.Interval
	if interval == "" {
		interval = IntervalDay
	}

	var cohortID *string
	if filters.CohortID != nil && *filters.CohortID != "" {
		cohortID = filters.CohortID
	}

	return QueryFilters{
		Range:    dateRange,
		Project:  ResolveProjectFilter(filters.ProjectID, filters.AllowedProjectIDs),
		CohortID: cohortID,
		Interval: interval,
	}
}

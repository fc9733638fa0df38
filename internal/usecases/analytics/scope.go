package analytics

import (
	"sort"
	"strings"

	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/apiErrors"
)

const unrestrictedScopeKey = "all"

var (
	analyticsRoles = []string{domain.RoleAdmin, domain.RoleCoordenacao, domain.RoleTecnica, domain.RoleEducadora}
	elevatedRoles  = []string{domain.RoleAdmin, domain.RoleCoordenacao, domain.RoleTecnica}
)

// ResolveScope deriva os projetos que o usuário pode consultar.
// AllowedProjectIDs nil significa acesso irrestrito.
func ResolveScope(claims *domain.Claims, requestedProjectID *string) (*domain.AnalyticsScope, error) {
	if claims == nil || !claims.HasRole(analyticsRoles...) {
		return nil, NewAnalyticsError(ErrAccessDenied, apiErrors.ErrInsufficientPrivilege, "papel sem acesso aos indicadores")
	}

	scope := normalizeScope(claims.ProjectScope)
	restricted := claims.HasRole(domain.RoleEducadora)

	if restricted && len(scope) == 0 {
		return nil, NewAnalyticsError(ErrScopeMisconfigured, apiErrors.ErrScopeMisconfigured, "conta sem projetos vinculados")
	}

	requested := ""
	if requestedProjectID != nil {
		requested = *requestedProjectID
	}

	if claims.HasRole(elevatedRoles...) || len(scope) == 0 {
		// educadora com escopo não ganha acesso a projetos de fora por acumular um papel elevado
		if restricted && requested != "" && !contains(scope, requested) {
			return nil, NewAnalyticsError(ErrScopeViolation, apiErrors.ErrScopeViolation, requested)
		}

		return &domain.AnalyticsScope{AllowedProjectIDs: nil, ScopeKey: unrestrictedScopeKey}, nil
	}

	if requested != "" && !contains(scope, requested) {
		return nil, NewAnalyticsError(ErrScopeViolation, apiErrors.ErrScopeViolation, requested)
	}

	return &domain.AnalyticsScope{AllowedProjectIDs: scope, ScopeKey: strings.Join(scope, ",")}, nil
}

// normalizeScope devolve uma cópia ordenada, sem vazios nem duplicados
func normalizeScope(projectIDs []string) []string {
	seen := make(map[string]struct{}, len(projectIDs))
	scope := make([]string, 0, len(projectIDs))

	for _, id := range projectIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		scope = append(scope, id)
	}

	sort.Strings(scope)
	return scope
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis conhecidos pelo painel
const (
	RoleAdmin       = "admin"
	RoleCoordenacao = "coordenacao"
	RoleTecnica     = "tecnica"
	RoleEducadora   = "educadora"
)

// Permissões de leitura do módulo de analytics
const (
	PermissionAnalyticsRead        = "analytics:read"
	PermissionAnalyticsReadProject = "analytics:read:project"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Roles        []string  `json:"roles"`
	ProjectScope []string  `json:"project_scope"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID       string   `json:"user_id"`
	UserName     string   `json:"user_name"`
	UserEmail    string   `json:"user_email"`
	Roles        []string `json:"roles"`
	ProjectScope []string `json:"project_scope"`
	Permissions  []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasRole verifica se o usuário possui algum dos papéis informados
func (c *Claims) HasRole(roles ...string) bool {
	for _, owned := range c.Roles {
		for _, role := range roles {
			if owned == role {
				return true
			}
		}
	}
	return false
}

// HasPermission verifica se o usuário possui alguma das permissões informadas
func (c *Claims) HasPermission(permissions ...string) bool {
	for _, owned := range c.Permissions {
		for _, permission := range permissions {
			if owned == permission {
				return true
			}
		}
	}
	return false
}

package analytics

import (
	"errors"
	"fmt"

	"github.com/imm/dashboard-api/pkg/apiErrors"
)

// Erros de analytics
var (
	// Erros de validação
	ErrInvalidDate      = errors.New("data inválida")
	ErrInvalidDateRange = errors.New("período inválido")

	// Erros de autorização
	ErrAccessDenied       = errors.New("acesso aos indicadores negado")
	ErrScopeViolation     = errors.New("projeto fora do escopo do usuário")
	ErrScopeMisconfigured = errors.New("usuário restrito sem projetos vinculados")
)

// AnalyticsError carrega o código de API junto do erro base
type AnalyticsError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Field   string // Campo de entrada relacionado (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *AnalyticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(baseErr error, code string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func newFieldError(baseErr error, code, field, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     baseErr,
		Code:    code,
		Field:   field,
		Details: details,
	}
}

// IsValidationError identifica erros que devem virar 400
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidDateRange)
}

// IsAuthorizationError identifica erros que devem virar 403
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrScopeViolation) ||
		errors.Is(err, ErrScopeMisconfigured)
}

// ErrorCode devolve o código de API do erro, ou SRV_001 quando não há um associado
func ErrorCode(err error) string {
	var analyticsErr *AnalyticsError
	if errors.As(err, &analyticsErr) && analyticsErr.Code != "" {
		return analyticsErr.Code
	}
	return apiErrors.ErrInternalServer
}

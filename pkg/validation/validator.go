// Package validation valida structs de parâmetros com go-playground/validator
// e converte as falhas em erros por campo para a resposta 400.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError descreve uma falha de validação em um campo
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// RequestValidationError agrupa as falhas de validação de uma requisição
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validação falhou"
	}

	messages := make([]string, 0, len(ve.Fields))
	for _, field := range ve.Fields {
		messages = append(messages, field.Message)
	}
	return strings.Join(messages, "; ")
}

// Details retorna o payload estruturado usado em apiErrors.WriteError
func (ve *RequestValidationError) Details() map[string]any {
	return map[string]any{"fields": ve.Fields}
}

// GetValidator retorna a instância única do validador.
// Os nomes de campo vêm da tag `query` (ou `json`) para casar com o que o cliente enviou.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"query", "json"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})

	return validate
}

// ValidateStruct retorna nil quando a struct é válida
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fields[i] = FieldError{
			Field:   fieldErr.Field(),
			Tag:     fieldErr.Tag(),
			Message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{Fields: fields}
}

var errorMessageTemplates = map[string]string{
	"required": "%s é obrigatório",
	"uuid":     "%s deve ser um UUID válido",
	"email":    "%s deve ser um email válido",
}

var errorMessageWithParam = map[string]string{
	"oneof":    "%s deve ser um dos valores: %s",
	"datetime": "%s deve estar no formato %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()

	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}

	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		param := fe.Param()
		if fe.Tag() == "datetime" && param == "2006-01-02" {
			param = "YYYY-MM-DD"
		}
		return fmt.Sprintf(template, field, param)
	}

	return fmt.Sprintf("%s falhou na validação %s", field, fe.Tag())
}

package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/imm/dashboard-api/internal/usecases/authenticating"
	"github.com/imm/dashboard-api/pkg/apiErrors"
	"github.com/imm/dashboard-api/pkg/log"
	"github.com/imm/dashboard-api/pkg/middleware"
	"github.com/imm/dashboard-api/pkg/validation"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		// Decodificar o corpo da requisição
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if verr := validation.ValidateStruct(req); verr != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios", verr.Details())
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// handleAuthError trata erros de autenticação e retorna a resposta apropriada
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if authenticating.IsAuthenticationError(err) || authenticating.IsValidationError(err) {
			log.ForContext(r.Context()).WithField("error", err.Error()).Warn("auth: falha de autenticação")
			apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
			return
		}

		log.ForContext(r.Context()).WithError(err).Error("auth: erro interno")
		apiErrors.WriteError(w, authErr.Code, "Erro interno ao autenticar", nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("auth: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
}

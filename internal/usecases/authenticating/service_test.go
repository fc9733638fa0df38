package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/imm/dashboard-api/infrastructure/repository/mocks"
	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/apiErrors"
)

var authConfig = config.Auth{SecretKey: "segredo-de-teste", TokenTTLHours: 2}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           "2b1f0c3e-7a55-4c1d-9d4e-1f0a2b3c4d5e",
		Name:         "Ana",
		Email:        "ana@imm.org",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{domain.RoleEducadora},
		ProjectScope: []string{"P1"},
		Permissions:  []string{domain.PermissionAnalyticsReadProject},
	}
}

func TestLoginUser_IssuesTokenWithScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@imm.org").Return(activeUser(t, "s3nh4!"), nil)

	service := NewService(repo, authConfig)

	token, err := service.LoginUser(context.Background(), "  Ana@IMM.org ", "s3nh4!")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "ana@imm.org", claims.UserEmail)
	assert.Equal(t, []string{domain.RoleEducadora}, claims.Roles)
	assert.Equal(t, []string{"P1"}, claims.ProjectScope)
	assert.Equal(t, []string{domain.PermissionAnalyticsReadProject}, claims.Permissions)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginUser_Failures(t *testing.T) {
	disabled := activeUser(t, "s3nh4!")
	disabled.Active = false

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository)
		wantErr  error
		wantCode string
	}{
		{
			name:     "campos vazios",
			email:    "",
			password: "",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "usuário inexistente",
			email:    "ninguem@imm.org",
			password: "x",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@imm.org").Return(nil, nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "senha errada",
			email:    "ana@imm.org",
			password: "errada",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@imm.org").Return(activeUser(t, "s3nh4!"), nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "usuário desativado",
			email:    "ana@imm.org",
			password: "s3nh4!",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@imm.org").Return(disabled, nil)
			},
			wantErr:  ErrUserDisabled,
			wantCode: apiErrors.ErrUserDisabled,
		},
		{
			name:     "falha no banco",
			email:    "ana@imm.org",
			password: "s3nh4!",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@imm.org").Return(nil, errors.New("connection reset"))
			},
			wantErr:  ErrDatabaseOperation,
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			token, err := NewService(repo, authConfig).LoginUser(context.Background(), tt.email, tt.password)

			assert.Empty(t, token)
			assert.ErrorIs(t, err, tt.wantErr)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}

func TestValidateToken(t *testing.T) {
	service := NewService(nil, authConfig)

	sign := func(secret string, method jwt.SigningMethod, expiresAt time.Time) string {
		claims := domain.Claims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("token válido", func(t *testing.T) {
		claims, err := service.ValidateToken(sign(authConfig.SecretKey, jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("token expirado", func(t *testing.T) {
		_, err := service.ValidateToken(sign(authConfig.SecretKey, jwt.SigningMethodHS256, time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		_, err := service.ValidateToken(sign("outro", jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("lixo", func(t *testing.T) {
		_, err := service.ValidateToken("nao.e.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthenticationError(err))
	})
}

func TestGetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().GetUserByID(gomock.Any(), "u1").Return(&domain.User{ID: "u1", PasswordHash: "hash"}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), "u2").Return(nil, nil)

	service := NewService(repo, authConfig)

	user, err := service.GetUserProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/imm/dashboard-api/infrastructure/database/postgres"
	"github.com/imm/dashboard-api/internal/domain"
)

//go:generate mockgen -source=user.go -destination=mocks/mock_user.go -package=mocks

const (
	usersTable = "users"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func userSelect() squirrel.SelectBuilder {
	return psql.
		Select(
			"id",
			"name",
			"email",
			"password_hash",
			"active",
			"roles",
			"project_scope",
			"permissions",
			"created_at",
			"updated_at",
		).
		From(usersTable)
}

func (r *userRepository) getUser(ctx context.Context, builder squirrel.SelectBuilder) (*domain.User, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de usuário: %w", err)
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		pq.Array(&user.Roles),
		pq.Array(&user.ProjectScope),
		pq.Array(&user.Permissions),
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", describeError(err))
	}

	return &user, nil
}

// GetUserByEmail retorna nil sem erro quando o email não está cadastrado
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, userSelect().Where(squirrel.Eq{"email": email}))
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUser(ctx, userSelect().Where(squirrel.Eq{"id": userID}))
}

// userUpsert insere o usuário ou atualiza o cadastro existente com o mesmo email.
// O id original é preservado em caso de conflito.
func userUpsert(user *domain.User) squirrel.InsertBuilder {
	return psql.
		Insert(usersTable).
		Columns("id", "name", "email", "password_hash", "active", "roles", "project_scope", "permissions").
		Values(
			user.ID,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Active,
			pq.Array(user.Roles),
			pq.Array(user.ProjectScope),
			pq.Array(user.Permissions),
		).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			active = EXCLUDED.active,
			roles = EXCLUDED.roles,
			project_scope = EXCLUDED.project_scope,
			permissions = EXCLUDED.permissions,
			updated_at = NOW()`)
}

func (r *userRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	query, args, err := userUpsert(user).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de usuário: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar usuário %s: %w", user.Email, describeError(err))
	}

	return nil
}

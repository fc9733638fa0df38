// Script de carga inicial dos usuários do painel.
//
// Uso: go run ./infrastructure/migration/script usuarios.json
//
// O arquivo contém uma lista de usuários com senha em texto plano; as senhas
// são gravadas apenas como hash bcrypt. Usuários já cadastrados (mesmo email)
// são atualizados.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/imm/dashboard-api/infrastructure/database/postgres"
	"github.com/imm/dashboard-api/infrastructure/repository"
	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const createUsersTable = `
CREATE TABLE users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	active        BOOLEAN NOT NULL DEFAULT TRUE,
	roles         TEXT[] NOT NULL DEFAULT '{}',
	project_scope TEXT[] NOT NULL DEFAULT '{}',
	permissions   TEXT[] NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// UserSeed é uma entrada do arquivo de carga
type UserSeed struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Active       *bool    `json:"active"`
	Roles        []string `json:"roles"`
	ProjectScope []string `json:"project_scope"`
	Permissions  []string `json:"permissions"`
}

var knownRoles = map[string]bool{
	domain.RoleAdmin:       true,
	domain.RoleCoordenacao: true,
	domain.RoleTecnica:     true,
	domain.RoleEducadora:   true,
}

// defaultPermissions deriva as permissões de leitura quando o arquivo não as informa
func defaultPermissions(roles []string) []string {
	for _, role := range roles {
		if role != domain.RoleEducadora {
			return []string{domain.PermissionAnalyticsRead}
		}
	}
	return []string{domain.PermissionAnalyticsReadProject}
}

// buildUser valida a entrada e gera o hash da senha
func buildUser(seed UserSeed, cost int) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" || seed.Password == "" {
		return nil, fmt.Errorf("email e senha são obrigatórios (%q)", seed.Name)
	}

	if len(seed.Roles) == 0 {
		return nil, fmt.Errorf("usuário %s sem papéis", email)
	}
	for _, role := range seed.Roles {
		if !knownRoles[role] {
			return nil, fmt.Errorf("usuário %s com papel desconhecido: %s", email, role)
		}
	}

	restricted := defaultPermissions(seed.Roles)[0] == domain.PermissionAnalyticsReadProject
	if restricted && len(seed.ProjectScope) == 0 {
		return nil, fmt.Errorf("usuário %s é educadora e precisa de ao menos um projeto", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha de %s: %w", email, err)
	}

	permissions := seed.Permissions
	if len(permissions) == 0 {
		permissions = defaultPermissions(seed.Roles)
	}

	active := true
	if seed.Active != nil {
		active = *seed.Active
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = email
	}

	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Active:       active,
		Roles:        seed.Roles,
		ProjectScope: seed.ProjectScope,
		Permissions:  permissions,
	}, nil
}

func readSeeds(path string) ([]UserSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	var seeds []UserSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("arquivo %s inválido: %w", path, err)
	}

	return seeds, nil
}

func ensureUsersTable(ctx context.Context, db *sql.DB) error {
	logrus.Info("Verificando tabela users...")

	var tableExists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = 'users'
		)
	`).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("erro ao verificar tabela users: %w", err)
	}

	if tableExists {
		logrus.Info("Tabela users já existe")
		return nil
	}

	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("erro ao criar tabela users: %w", err)
	}

	logrus.Info("Tabela users criada com sucesso")
	return nil
}

func insertUsers(ctx context.Context, tx *sql.Tx, seeds []UserSeed) (int, int) {
	logrus.Infof("Iniciando gravação de %d usuários...", len(seeds))
	repo := repository.NewUserRepository(tx)

	successCount := 0
	errorCount := 0

	for i, seed := range seeds {
		user, err := buildUser(seed, bcrypt.DefaultCost)
		if err != nil {
			logrus.Errorf("ERRO na entrada [%d/%d]: %v", i+1, len(seeds), err)
			errorCount++
			continue
		}

		if err := repo.UpsertUser(ctx, user); err != nil {
			logrus.Errorf("ERRO ao gravar usuário [%d/%d] %s: %v", i+1, len(seeds), user.Email, err)
			errorCount++
			continue
		}
		successCount++
	}

	return successCount, errorCount
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if len(os.Args) < 2 {
		logrus.Fatal("Informe o arquivo JSON com os usuários")
	}

	seeds, err := readSeeds(os.Args[1])
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("Total de %d usuários definidos para carga", len(seeds))

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logrus.Info("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	if err := ensureUsersTable(ctx, conn.DB); err != nil {
		logrus.Fatal(err)
	}

	startTime := time.Now()
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao iniciar transação")
	}

	successCount, errorCount := insertUsers(ctx, tx, seeds)

	if errorCount > 0 {
		_ = tx.Rollback()
		logrus.Fatalf("Carga cancelada: %d entradas com erro, nenhuma alteração gravada", errorCount)
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("ERRO ao confirmar transação")
	}

	logrus.Infof("Carga de usuários concluída em %v. Gravados: %d", time.Since(startTime), successCount)
}

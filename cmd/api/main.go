package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imm/dashboard-api/infrastructure/cache"
	"github.com/imm/dashboard-api/infrastructure/database/postgres"
	"github.com/imm/dashboard-api/infrastructure/repository"
	"github.com/imm/dashboard-api/internal/api"
	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/scheduler"
	"github.com/imm/dashboard-api/internal/usecases/analytics"
	"github.com/imm/dashboard-api/internal/usecases/authenticating"
	"github.com/imm/dashboard-api/internal/usecases/exporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	analyticsCache := newCache(ctx, cfg.Redis)

	analyticsRepo := repository.NewAnalyticsRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)
	analyzer := analytics.NewService(analyticsRepo, analyticsCache)

	exporter, err := exporting.NewService(cfg.Export)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar exportação")
	}

	cacheWarmupService := scheduler.NewCacheWarmupService(analyzer, cfg)
	if err := cacheWarmupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de aquecimento de cache")
	}

	server, err := api.New(cfg, api.Dependencies{
		Database:      pgConn,
		Cache:         analyticsCache,
		Analyzer:      analyzer,
		Exporter:      exporter,
		Authenticator: authenticator,
		CacheWarmer:   cacheWarmupService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newCache devolve um cache sem backend quando REDIS_URL está vazia ou inválida;
// nesse caso os indicadores são sempre calculados direto no banco
func newCache(ctx context.Context, redisConfig config.Redis) *cache.Cache {
	ttl := redisConfig.CacheTTLDuration()

	if redisConfig.URL == "" {
		logrus.Info("REDIS_URL não configurada, cache de analytics desabilitado")
		return cache.NewCache(nil, ttl)
	}

	client, err := cache.NewRedisClient(redisConfig.URL)
	if err != nil {
		logrus.WithError(err).Error("Erro ao configurar Redis, cache de analytics desabilitado")
		return cache.NewCache(nil, ttl)
	}

	store := cache.NewRedisStore(client)
	if err := store.Ping(ctx); err != nil {
		// o cliente reconecta sozinho; falhas seguem tratadas como miss
		logrus.WithError(err).Warn("Redis indisponível na inicialização")
	}

	logrus.WithField("ttl", ttl.String()).Info("Cache de analytics habilitado")
	return cache.NewCache(store, ttl)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultCacheTTL é usado quando ANALYTICS_CACHE_TTL está ausente ou inválido
const DefaultCacheTTL = 300 * time.Second

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Redis       Redis       `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Export      Export      `mapstructure:",squash"`
	CacheWarmup CacheWarmup `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	// URL vazia desabilita o cache
	URL      string `mapstructure:"redis_url"`
	CacheTTL string `mapstructure:"analytics_cache_ttl"`
}

// CacheTTLDuration converte o TTL em segundos, caindo para DefaultCacheTTL quando ausente ou inválido
func (r Redis) CacheTTLDuration() time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(r.CacheTTL))
	if err != nil || seconds <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(seconds) * time.Second
}

type Auth struct {
	SecretKey     string `mapstructure:"secret_key"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type Export struct {
	PDFCommand   string   `mapstructure:"export_pdf_command"`
	PDFArgs      []string `mapstructure:"export_pdf_args"`
	TemplatePath string   `mapstructure:"export_template_path"`
	TmpDir       string   `mapstructure:"export_tmp_dir"`
}

type CacheWarmup struct {
	CronSchedule string `mapstructure:"cache_warmup_cron"`
	Enabled      bool   `mapstructure:"cache_warmup_enabled"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/imm?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ANALYTICS_CACHE_TTL", "300")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)

	viper.SetDefault("EXPORT_PDF_COMMAND", "wkhtmltopdf")
	viper.SetDefault("EXPORT_PDF_ARGS", "--quiet")
	viper.SetDefault("EXPORT_TEMPLATE_PATH", "")
	viper.SetDefault("EXPORT_TMP_DIR", "")

	viper.SetDefault("CACHE_WARMUP_CRON", "0 */4 * * *") // A cada 4 horas
	viper.SetDefault("CACHE_WARMUP_ENABLED", false)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Auth.TokenTTLHours <= 0 {
		config.Auth.TokenTTLHours = 24
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseSetting indica que uma configuração obrigatória do banco não foi informada
var ErrMissingDatabaseSetting = errors.New("configuração obrigatória do banco ausente")

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Filter      Filter      `mapstructure:",squash"`
	SalesDigest SalesDigest `mapstructure:",squash"`
	AMQP        AMQP        `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Host     string `mapstructure:"database_host"`
	Port     string `mapstructure:"database_port"`
	Name     string `mapstructure:"database_name"`
	User     string `mapstructure:"database_user"`
	Password string `mapstructure:"database_password"`
	SSLMode  string `mapstructure:"database_sslmode"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Filter struct {
	// EmptySelection define o comportamento para seleção vazia: "empty" (sem dados) ou "all" (sem restrição)
	EmptySelection string `mapstructure:"filter_empty_selection"`
}

type SalesDigest struct {
	CronSchedule string `mapstructure:"sales_digest_cron"`
	Enabled      bool   `mapstructure:"sales_digest_enabled"`
}

type AMQP struct {
	URL        string `mapstructure:"amqp_url"`
	Exchange   string `mapstructure:"amqp_exchange"`
	RoutingKey string `mapstructure:"amqp_routing_key"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	// Credenciais não têm padrão: precisam vir do ambiente
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_HOST", "")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_NAME", "")
	viper.SetDefault("DATABASE_USER", "")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MIGRATE", false)

	viper.SetDefault("FILTER_EMPTY_SELECTION", "empty")

	viper.SetDefault("SALES_DIGEST_CRON", "0 6 1 * *") // No primeiro dia de cada mês às 6h da manhã
	viper.SetDefault("SALES_DIGEST_ENABLED", false)

	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "sales")
	viper.SetDefault("AMQP_ROUTING_KEY", "sales.digest")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return Load(viper.GetViper())
}

// Load decodifica e valida a configuração a partir de uma instância do viper
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Database.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = config.Database.BuildDSN()

	return config, nil
}

// Validate verifica as chaves obrigatórias: driver, host, banco, usuário e senha.
// No sqlite apenas driver e banco (caminho do arquivo) são obrigatórios.
func (d Database) Validate() error {
	type setting struct {
		key   string
		value string
	}

	required := []setting{
		{"DATABASE_DRIVER", d.Driver},
		{"DATABASE_NAME", d.Name},
	}

	if d.Driver != "sqlite" {
		required = append(required,
			setting{"DATABASE_HOST", d.Host},
			setting{"DATABASE_USER", d.User},
			setting{"DATABASE_PASSWORD", d.Password},
		)
	}

	missing := make([]string, 0)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return errors.Wrap(ErrMissingDatabaseSetting, strings.Join(missing, ", "))
	}

	return nil
}

// BuildDSN monta a string de conexão do driver configurado
func (d Database) BuildDSN() string {
	if d.Driver == "sqlite" {
		return d.Name
	}

	host := d.Host
	if d.Port != "" {
		host = fmt.Sprintf("%s:%s", d.Host, d.Port)
	}

	dsn := url.URL{
		Scheme: d.Driver,
		User:   url.UserPassword(d.User, d.Password),
		Host:   host,
		Path:   "/" + d.Name,
	}

	if d.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}

	return dsn.String()
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
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

// ShutdownTimeout é o tempo máximo para o desligamento gracioso do servidor
const ShutdownTimeout = 15 * time.Second

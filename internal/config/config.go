package config

import (
	"strings"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/nimasrn/debt-ledger/pkg/store"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every setting of the ledger binaries. Values come from the
// process environment, optionally seeded from a .env file.
type Config struct {
	AppEnv    string `env:"APP_ENV,default=dev"`
	AppName   string `env:"APP_NAME,default=debt_ledger"`
	AppLocale string `env:"APP_LOCALE,default=vi"`
	DataDir   string `env:"DATA_DIR"`

	DBDriver string `env:"DB_DRIVER,default=sqlite"`
	DBPath   string `env:"DB_PATH"`
	DBDebug  bool   `env:"DB_DEBUG,default=false"`

	PostgresHost     string `env:"POSTGRES_HOST,default=localhost"`
	PostgresPort     string `env:"POSTGRES_PORT,default=5432"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDatabase string `env:"POSTGRES_DBNAME"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
	LogFile  string `env:"LOG_FILE"`

	BackupDir     string `env:"BACKUP_DIR"`
	BackupMax     int    `env:"BACKUP_MAX,default=30"`
	BackupOnStart bool   `env:"BACKUP_ON_START,default=true"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR,default=:8080"`

	MetricsEnable bool   `env:"METRICS_ENABLE,default=false"`
	MetricsAddr   string `env:"METRICS_ADDR,default=:9100"`
	MetricsURI    string `env:"METRICS_URI,default=/metrics"`
	PromNamespace string `env:"PROM_NAMESPACE,default=debt_ledger"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c, err := load(path)
	if err != nil {
		return err
	}
	config = c
	return nil
}

func load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return nil, errors.Wrap(err, "failed to map env variables to Configuration object")
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" {
		c.DBDriver = store.DriverSQLite
	}
	return c, nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:   c.DBDriver,
		Path:     c.DatabasePath(),
		User:     c.PostgresUser,
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		Password: c.PostgresPassword,
		Database: c.PostgresDatabase,
		Debug:    c.DBDebug,
	}
}

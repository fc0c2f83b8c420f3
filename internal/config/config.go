package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override secrets in the config file
	ENV_JWT_SECRET       = "JWT_ACCESS_TOKEN_SECRET"
	ENV_MONGO_URI        = "MONGO_URI"
	ENV_DATABASE_DSN     = "DATABASE_DSN"
	ENV_REDIS_PASSWORD   = "REDIS_PASSWORD"
	ENV_SMTP_USERNAME    = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD    = "SMTP_PASSWORD"
	ENV_MAIL_FROM        = "MAIL_FROM"
	ENV_MAIL_TO_OVERRIDE = "MAIL_TO_OVERRIDE"
	ENV_PORT             = "PORT"
)

const defaultConfigPath = "config/config.yml"

// Supported account store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported mail drivers. The log driver writes messages to the log instead of sending
// them and is meant for local development and tests.
const (
	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

type AppConfig struct {
	Port         int      `yaml:"port"`
	GinMode      string   `yaml:"gin_mode"`
	Version      string   `yaml:"version"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type LoggingConfig struct {
	Level           string `yaml:"level"`
	IncludeSrc      bool   `yaml:"include_src"`
	LogToFile       bool   `yaml:"log_to_file"`
	Filename        string `yaml:"filename"`
	MaxSize         int    `yaml:"max_size"`
	MaxAge          int    `yaml:"max_age"`
	MaxBackups      int    `yaml:"max_backups"`
	CompressOldLogs bool   `yaml:"compress_old_logs"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	Timeout       string `yaml:"timeout"`
	MaxPoolSize   uint64 `yaml:"max_pool_size"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	BooksKey string `yaml:"books_key"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type AuthConfig struct {
	EnforceRevocation *bool `yaml:"enforce_revocation"`
}

type MailConfig struct {
	Driver             string `yaml:"driver"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Username           string `yaml:"username"`
	Password           string `yaml:"password"`
	From               string `yaml:"from"`
	ToOverride         string `yaml:"to_override"`
	Connections        int    `yaml:"connections"`
	SendTimeout        string `yaml:"send_timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

type BillingConfig struct {
	DataPath string `yaml:"data_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	Billing  BillingConfig  `yaml:"billing"`
}

type Config struct {
	Port              string
	GinMode           string
	Version           string
	AllowOrigins      []string
	Logging           LoggingConfig
	DBDriver          string
	DSN               string
	MongoURI          string
	MongoDatabase     string
	MongoMaxPoolSize  uint64
	StoreTimeout      time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	BooksKey          string
	JWTSecret         string
	EnforceRevocation bool
	MailDriver        string
	MailHost          string
	MailPort          int
	MailUsername      string
	MailPassword      string
	MailFrom          string
	MailToOverride    string
	MailConnections   int
	MailSendTimeout   time.Duration
	MailInsecureTLS   bool
	BillingDataPath   string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML config file, then applies .env and environment overrides.
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configFile, err := loadConfigFile(env(ENV_CONFIG_FILE_PATH, defaultConfigPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	return FromFile(configFile)
}

// FromFile builds the runtime configuration from a parsed config file and the environment.
func FromFile(configFile *ConfigFile) (*Config, error) {
	storeTimeout, err := parseDurationOr(configFile.Database.Timeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid database timeout: %w", err)
	}

	sendTimeout, err := parseDurationOr(configFile.Mail.SendTimeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid mail send timeout: %w", err)
	}

	port := strconv.Itoa(configFile.App.Port)
	if configFile.App.Port == 0 {
		port = "8000"
	}

	cfg := &Config{
		Port:              env(ENV_PORT, port),
		GinMode:           configFile.App.GinMode,
		Version:           configFile.App.Version,
		AllowOrigins:      configFile.App.AllowOrigins,
		Logging:           configFile.Logging,
		DBDriver:          configFile.Database.Driver,
		DSN:               env(ENV_DATABASE_DSN, configFile.Database.DSN),
		MongoURI:          env(ENV_MONGO_URI, configFile.Database.MongoURI),
		MongoDatabase:     configFile.Database.MongoDatabase,
		MongoMaxPoolSize:  configFile.Database.MaxPoolSize,
		StoreTimeout:      storeTimeout,
		RedisAddr:         configFile.Redis.Addr,
		RedisPassword:     env(ENV_REDIS_PASSWORD, configFile.Redis.Password),
		RedisDB:           configFile.Redis.DB,
		BooksKey:          configFile.Redis.BooksKey,
		JWTSecret:         env(ENV_JWT_SECRET, configFile.JWT.Secret),
		EnforceRevocation: true,
		MailDriver:        configFile.Mail.Driver,
		MailHost:          configFile.Mail.Host,
		MailPort:          configFile.Mail.Port,
		MailUsername:      env(ENV_SMTP_USERNAME, configFile.Mail.Username),
		MailPassword:      env(ENV_SMTP_PASSWORD, configFile.Mail.Password),
		MailFrom:          env(ENV_MAIL_FROM, configFile.Mail.From),
		MailToOverride:    env(ENV_MAIL_TO_OVERRIDE, configFile.Mail.ToOverride),
		MailConnections:   configFile.Mail.Connections,
		MailSendTimeout:   sendTimeout,
		MailInsecureTLS:   configFile.Mail.InsecureSkipVerify,
		BillingDataPath:   configFile.Billing.DataPath,
	}
	if configFile.Auth.EnforceRevocation != nil {
		cfg.EnforceRevocation = *configFile.Auth.EnforceRevocation
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = DriverMongo
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "backend"
	}
	if cfg.BooksKey == "" {
		cfg.BooksKey = "books"
	}
	if cfg.MailDriver == "" {
		cfg.MailDriver = MailDriverSMTP
	}
	if cfg.MailConnections == 0 {
		cfg.MailConnections = 1
	}
	if cfg.BillingDataPath == "" {
		cfg.BillingDataPath = "storage/json/filter-data.json"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run safely with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%s must be set", ENV_JWT_SECRET)
	}
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("database.mongo_uri must be set for driver %q", c.DBDriver)
		}
	case DriverPostgres, DriverSQLite:
		if c.DSN == "" {
			return fmt.Errorf("database.dsn must be set for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.DBDriver)
	}
	switch c.MailDriver {
	case MailDriverSMTP:
		if c.MailHost == "" {
			return fmt.Errorf("mail.host must be set for mail driver %q", c.MailDriver)
		}
	case MailDriverLog:
	default:
		return fmt.Errorf("unsupported mail driver: %s", c.MailDriver)
	}
	return nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDurationOr(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

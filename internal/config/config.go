package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	DB       DBConfig
	Parser   ParserConfig
	Workflow WorkflowConfig
	Reports  ReportsConfig
	Log      LogConfig
	CORS     CORSConfig
}

// Cache store backends.
const (
	CacheBackendMemory   = "memory"
	CacheBackendBolt     = "bolt"
	CacheBackendPostgres = "postgres"
)

// CacheConfig holds settings shared by the document and workflow cache tiers.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	TTL           time.Duration `mapstructure:"ttl"` // 0 disables expiry
	Backend       string        `mapstructure:"backend"`
	BoltPath      string        `mapstructure:"bolt_path"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"` // 0 disables the sweep
}

// WorkflowConfig bounds the calls made to the external collaborators.
type WorkflowConfig struct {
	ExtractionTimeout time.Duration `mapstructure:"extraction_timeout"`
	ComparisonTimeout time.Duration `mapstructure:"comparison_timeout"`
}

// ReportsConfig holds settings for the S3 report archive.
type ReportsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single LLM extraction provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM extraction settings with an optional fallback provider.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	Environment   string        `mapstructure:"environment"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
}

// DBConfig holds PostgreSQL connection settings for the postgres cache backend.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCVERIFY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_file_size_mb", 20)

	// Cache defaults (90 days, as the cache has always kept entries)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "2160h")
	v.SetDefault("cache.backend", CacheBackendBolt)
	v.SetDefault("cache.bolt_path", "cache.db")
	v.SetDefault("cache.sweep_interval", "0s")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docverify")
	v.SetDefault("db.password", "docverify_secret")
	v.SetDefault("db.name", "docverify_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Parser defaults
	v.SetDefault("parser.primary.provider", "gemini")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "gemini-2.5-flash")
	v.SetDefault("parser.primary.max_retries", 2)
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.max_retries", 2)
	v.SetDefault("parser.secondary.timeout_secs", 120)

	// Workflow defaults
	v.SetDefault("workflow.extraction_timeout", "120s")
	v.SetDefault("workflow.comparison_timeout", "30s")

	// Report archive defaults
	v.SetDefault("reports.enabled", false)
	v.SetDefault("reports.region", "us-east-1")
	v.SetDefault("reports.bucket", "docverify-reports")
	v.SetDefault("reports.endpoint", "")
	v.SetDefault("reports.prefix", "reports/")
	v.SetDefault("reports.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DOCVERIFY_SERVER_PORT",
		"server.read_timeout":            "DOCVERIFY_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCVERIFY_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCVERIFY_SERVER_ENVIRONMENT",
		"server.max_file_size_mb":        "DOCVERIFY_SERVER_MAX_FILE_SIZE_MB",
		"cache.enabled":                  "DOCVERIFY_CACHE_ENABLED",
		"cache.ttl":                      "DOCVERIFY_CACHE_TTL",
		"cache.backend":                  "DOCVERIFY_CACHE_BACKEND",
		"cache.bolt_path":                "DOCVERIFY_CACHE_BOLT_PATH",
		"cache.sweep_interval":           "DOCVERIFY_CACHE_SWEEP_INTERVAL",
		"db.host":                        "DOCVERIFY_DB_HOST",
		"db.port":                        "DOCVERIFY_DB_PORT",
		"db.user":                        "DOCVERIFY_DB_USER",
		"db.password":                    "DOCVERIFY_DB_PASSWORD",
		"db.name":                        "DOCVERIFY_DB_NAME",
		"db.sslmode":                     "DOCVERIFY_DB_SSLMODE",
		"db.max_open":                    "DOCVERIFY_DB_MAX_OPEN",
		"db.max_idle":                    "DOCVERIFY_DB_MAX_IDLE",
		"parser.primary.provider":        "DOCVERIFY_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "DOCVERIFY_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "DOCVERIFY_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.max_retries":     "DOCVERIFY_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":    "DOCVERIFY_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "DOCVERIFY_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "DOCVERIFY_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "DOCVERIFY_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.max_retries":   "DOCVERIFY_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":  "DOCVERIFY_PARSER_SECONDARY_TIMEOUT_SECS",
		"workflow.extraction_timeout":    "DOCVERIFY_WORKFLOW_EXTRACTION_TIMEOUT",
		"workflow.comparison_timeout":    "DOCVERIFY_WORKFLOW_COMPARISON_TIMEOUT",
		"reports.enabled":                "DOCVERIFY_REPORTS_ENABLED",
		"reports.region":                 "DOCVERIFY_REPORTS_REGION",
		"reports.bucket":                 "DOCVERIFY_REPORTS_BUCKET",
		"reports.endpoint":               "DOCVERIFY_REPORTS_ENDPOINT",
		"reports.access_key":             "DOCVERIFY_REPORTS_ACCESS_KEY",
		"reports.secret_key":             "DOCVERIFY_REPORTS_SECRET_KEY",
		"reports.prefix":                 "DOCVERIFY_REPORTS_PREFIX",
		"reports.presign_expiry":         "DOCVERIFY_REPORTS_PRESIGN_EXPIRY",
		"log.level":                      "DOCVERIFY_LOG_LEVEL",
		"log.format":                     "DOCVERIFY_LOG_FORMAT",
		"cors.allowed_origins":           "DOCVERIFY_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Older deployments configure the AI provider key as GEMINI_API_KEY.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && os.Getenv("DOCVERIFY_PARSER_PRIMARY_API_KEY") == "" {
		v.Set("parser.primary.api_key", key)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCVERIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCVERIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:          serverPort,
		ReadTimeout:   v.GetDuration("server.read_timeout"),
		WriteTimeout:  v.GetDuration("server.write_timeout"),
		Environment:   v.GetString("server.environment"),
		MaxFileSizeMB: v.GetInt64("server.max_file_size_mb"),
	}
	cfg.Cache = CacheConfig{
		Enabled:       v.GetBool("cache.enabled"),
		TTL:           v.GetDuration("cache.ttl"),
		Backend:       strings.ToLower(v.GetString("cache.backend")),
		BoltPath:      v.GetString("cache.bolt_path"),
		SweepInterval: v.GetDuration("cache.sweep_interval"),
	}
	switch cfg.Cache.Backend {
	case CacheBackendMemory, CacheBackendBolt, CacheBackendPostgres:
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL < 0 {
		return nil, fmt.Errorf("cache ttl must not be negative: %s", cfg.Cache.TTL)
	}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Parser = ParserConfig{
		Primary:   providerConfig(v, "parser.primary"),
		Secondary: providerConfig(v, "parser.secondary"),
	}
	cfg.Workflow = WorkflowConfig{
		ExtractionTimeout: v.GetDuration("workflow.extraction_timeout"),
		ComparisonTimeout: v.GetDuration("workflow.comparison_timeout"),
	}
	cfg.Reports = ReportsConfig{
		Enabled:       v.GetBool("reports.enabled"),
		Region:        v.GetString("reports.region"),
		Bucket:        v.GetString("reports.bucket"),
		Endpoint:      v.GetString("reports.endpoint"),
		AccessKey:     v.GetString("reports.access_key"),
		SecretKey:     v.GetString("reports.secret_key"),
		Prefix:        v.GetString("reports.prefix"),
		PresignExpiry: v.GetInt64("reports.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ParserProviderConfig {
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		MaxRetries:   v.GetInt(prefix + ".max_retries"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

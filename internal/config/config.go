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
	Server     ServerConfig
	DB         DBConfig
	Store      StoreConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	Validators ValidatorsConfig
	Evidence   EvidenceConfig
	Jobs       JobsConfig
	Log        LogConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
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

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// StoreConfig selects the validation job store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

// JWTConfig holds the settings used to verify caller tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// RateLimitConfig holds the fixed-window request limiter settings.
type RateLimitConfig struct {
	Limit         int           `mapstructure:"limit"`
	Window        time.Duration `mapstructure:"window"`
	Backend       string        `mapstructure:"backend"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// VendorConfig holds the connection settings for one vendor check.
type VendorConfig struct {
	Endpoint          string  `mapstructure:"endpoint"`
	APIKey            string  `mapstructure:"api_key"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// Configured reports whether the vendor has an endpoint.
func (v *VendorConfig) Configured() bool {
	return strings.TrimSpace(v.Endpoint) != ""
}

// ValidatorsConfig holds settings shared by the validator runner and the
// built-in vendor checks.
type ValidatorsConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	DefaultLevel      string        `mapstructure:"default_level"`
	BatchConcurrency  int           `mapstructure:"batch_concurrency"`
	Watchlist         VendorConfig  `mapstructure:"watchlist"`
	NationalID        VendorConfig  `mapstructure:"national_id"`
	TaxID             VendorConfig  `mapstructure:"tax_id"`
	DocumentSignature VendorConfig  `mapstructure:"document_signature"`
}

// EvidenceConfig holds the S3 settings for the evidence archive.
// An empty bucket disables archiving.
type EvidenceConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// JobsConfig bounds job history reads.
type JobsConfig struct {
	DefaultListLimit int `mapstructure:"default_list_limit"`
	MaxListLimit     int `mapstructure:"max_list_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the FIELDCHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIELDCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fieldcheck")
	v.SetDefault("db.password", "fieldcheck_secret")
	v.SetDefault("db.name", "fieldcheck_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("store.backend", BackendPostgres)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")

	// Rate limit defaults
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", "60s")
	v.SetDefault("rate_limit.backend", BackendMemory)
	v.SetDefault("rate_limit.sweep_interval", "5m")

	// Validator defaults
	v.SetDefault("validators.timeout", "30s")
	v.SetDefault("validators.default_level", "hard")
	v.SetDefault("validators.batch_concurrency", 4)
	for _, vendor := range []string{"watchlist", "national_id", "tax_id", "document_signature"} {
		v.SetDefault("validators."+vendor+".endpoint", "")
		v.SetDefault("validators."+vendor+".api_key", "")
		v.SetDefault("validators."+vendor+".requests_per_second", 5)
	}

	// Evidence archive defaults
	v.SetDefault("evidence.region", "us-east-1")
	v.SetDefault("evidence.bucket", "")
	v.SetDefault("evidence.endpoint", "")
	v.SetDefault("evidence.key_prefix", "")

	v.SetDefault("jobs.default_list_limit", 50)
	v.SetDefault("jobs.max_list_limit", 200)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                                   "FIELDCHECK_SERVER_PORT",
		"server.read_timeout":                           "FIELDCHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":                          "FIELDCHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":                            "FIELDCHECK_SERVER_ENVIRONMENT",
		"db.host":                                       "FIELDCHECK_DB_HOST",
		"db.port":                                       "FIELDCHECK_DB_PORT",
		"db.user":                                       "FIELDCHECK_DB_USER",
		"db.password":                                   "FIELDCHECK_DB_PASSWORD",
		"db.name":                                       "FIELDCHECK_DB_NAME",
		"db.sslmode":                                    "FIELDCHECK_DB_SSLMODE",
		"db.max_open":                                   "FIELDCHECK_DB_MAX_OPEN",
		"db.max_idle":                                   "FIELDCHECK_DB_MAX_IDLE",
		"store.backend":                                 "FIELDCHECK_STORE_BACKEND",
		"jwt.secret":                                    "FIELDCHECK_JWT_SECRET",
		"jwt.issuer":                                    "FIELDCHECK_JWT_ISSUER",
		"rate_limit.limit":                              "FIELDCHECK_RATE_LIMIT_LIMIT",
		"rate_limit.window":                             "FIELDCHECK_RATE_LIMIT_WINDOW",
		"rate_limit.backend":                            "FIELDCHECK_RATE_LIMIT_BACKEND",
		"rate_limit.sweep_interval":                     "FIELDCHECK_RATE_LIMIT_SWEEP_INTERVAL",
		"validators.timeout":                            "FIELDCHECK_VALIDATORS_TIMEOUT",
		"validators.default_level":                      "FIELDCHECK_VALIDATORS_DEFAULT_LEVEL",
		"validators.batch_concurrency":                  "FIELDCHECK_VALIDATORS_BATCH_CONCURRENCY",
		"validators.watchlist.endpoint":                 "FIELDCHECK_VALIDATORS_WATCHLIST_ENDPOINT",
		"validators.watchlist.api_key":                  "FIELDCHECK_VALIDATORS_WATCHLIST_API_KEY",
		"validators.watchlist.requests_per_second":      "FIELDCHECK_VALIDATORS_WATCHLIST_RPS",
		"validators.national_id.endpoint":               "FIELDCHECK_VALIDATORS_NATIONAL_ID_ENDPOINT",
		"validators.national_id.api_key":                "FIELDCHECK_VALIDATORS_NATIONAL_ID_API_KEY",
		"validators.national_id.requests_per_second":    "FIELDCHECK_VALIDATORS_NATIONAL_ID_RPS",
		"validators.tax_id.endpoint":                    "FIELDCHECK_VALIDATORS_TAX_ID_ENDPOINT",
		"validators.tax_id.api_key":                     "FIELDCHECK_VALIDATORS_TAX_ID_API_KEY",
		"validators.tax_id.requests_per_second":         "FIELDCHECK_VALIDATORS_TAX_ID_RPS",
		"validators.document_signature.endpoint":        "FIELDCHECK_VALIDATORS_DOCUMENT_SIGNATURE_ENDPOINT",
		"validators.document_signature.api_key":         "FIELDCHECK_VALIDATORS_DOCUMENT_SIGNATURE_API_KEY",
		"validators.document_signature.requests_per_second": "FIELDCHECK_VALIDATORS_DOCUMENT_SIGNATURE_RPS",
		"evidence.region":                               "FIELDCHECK_EVIDENCE_REGION",
		"evidence.bucket":                               "FIELDCHECK_EVIDENCE_BUCKET",
		"evidence.endpoint":                             "FIELDCHECK_EVIDENCE_ENDPOINT",
		"evidence.access_key":                           "FIELDCHECK_EVIDENCE_ACCESS_KEY",
		"evidence.secret_key":                           "FIELDCHECK_EVIDENCE_SECRET_KEY",
		"evidence.key_prefix":                           "FIELDCHECK_EVIDENCE_KEY_PREFIX",
		"jobs.default_list_limit":                       "FIELDCHECK_JOBS_DEFAULT_LIST_LIMIT",
		"jobs.max_list_limit":                           "FIELDCHECK_JOBS_MAX_LIST_LIMIT",
		"log.level":                                     "FIELDCHECK_LOG_LEVEL",
		"log.format":                                    "FIELDCHECK_LOG_FORMAT",
		"cors.allowed_origins":                          "FIELDCHECK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FIELDCHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FIELDCHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.Store = StoreConfig{
		Backend: strings.ToLower(v.GetString("store.backend")),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.RateLimit = RateLimitConfig{
		Limit:         v.GetInt("rate_limit.limit"),
		Window:        v.GetDuration("rate_limit.window"),
		Backend:       strings.ToLower(v.GetString("rate_limit.backend")),
		SweepInterval: v.GetDuration("rate_limit.sweep_interval"),
	}
	cfg.Validators = ValidatorsConfig{
		Timeout:           v.GetDuration("validators.timeout"),
		DefaultLevel:      strings.ToLower(v.GetString("validators.default_level")),
		BatchConcurrency:  v.GetInt("validators.batch_concurrency"),
		Watchlist:         vendorConfig(v, "watchlist"),
		NationalID:        vendorConfig(v, "national_id"),
		TaxID:             vendorConfig(v, "tax_id"),
		DocumentSignature: vendorConfig(v, "document_signature"),
	}
	cfg.Evidence = EvidenceConfig{
		Region:    v.GetString("evidence.region"),
		Bucket:    v.GetString("evidence.bucket"),
		Endpoint:  v.GetString("evidence.endpoint"),
		AccessKey: v.GetString("evidence.access_key"),
		SecretKey: v.GetString("evidence.secret_key"),
		KeyPrefix: v.GetString("evidence.key_prefix"),
	}
	cfg.Jobs = JobsConfig{
		DefaultListLimit: v.GetInt("jobs.default_list_limit"),
		MaxListLimit:     v.GetInt("jobs.max_list_limit"),
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
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func vendorConfig(v *viper.Viper, name string) VendorConfig {
	prefix := "validators." + name + "."
	return VendorConfig{
		Endpoint:          v.GetString(prefix + "endpoint"),
		APIKey:            v.GetString(prefix + "api_key"),
		RequestsPerSecond: v.GetFloat64(prefix + "requests_per_second"),
	}
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("config: unsupported store backend %q", c.Store.Backend)
	}
	switch c.RateLimit.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("config: unsupported rate limit backend %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Limit <= 0 {
		return fmt.Errorf("config: rate_limit.limit must be positive, got %d", c.RateLimit.Limit)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: rate_limit.window must be positive, got %s", c.RateLimit.Window)
	}
	if c.Validators.Timeout <= 0 {
		return fmt.Errorf("config: validators.timeout must be positive, got %s", c.Validators.Timeout)
	}
	if c.Validators.DefaultLevel != "hard" && c.Validators.DefaultLevel != "soft" {
		return fmt.Errorf("config: validators.default_level must be hard or soft, got %q", c.Validators.DefaultLevel)
	}
	if c.Jobs.DefaultListLimit <= 0 || c.Jobs.MaxListLimit < c.Jobs.DefaultListLimit {
		return fmt.Errorf("config: invalid job list limits (default %d, max %d)", c.Jobs.DefaultListLimit, c.Jobs.MaxListLimit)
	}
	return nil
}

// UsesPostgres reports whether any component needs a database connection.
func (c *Config) UsesPostgres() bool {
	return c.Store.Backend == BackendPostgres || c.RateLimit.Backend == BackendPostgres
}

package config

import "time"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Identity IdentityConfig `mapstructure:"identity"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"dbname"`
	SSLMode        string        `mapstructure:"sslmode"`
	MaxOpenConns   int           `mapstructure:"max_open_conns"`
	MinConns       int           `mapstructure:"min_conns"`
	ConnMaxLife    time.Duration `mapstructure:"conn_max_life"`
	AutoMigrate    bool          `mapstructure:"auto_migrate"`
	MigrationsPath string        `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IdentityConfig points at the external identity provider's admin API.
// The service key is the privileged bearer credential for admin calls; the
// JWT secret verifies end-user access tokens issued by the same provider.
type IdentityConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	ServiceKey string        `mapstructure:"service_key"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	PageSize   int           `mapstructure:"page_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// AdminConfig holds the designated administrator override: the account with
// this email is always resolved as an enterprise admin, regardless of what
// the stores say.
type AdminConfig struct {
	Email       string `mapstructure:"email"`
	DisplayName string `mapstructure:"display_name"`
}

// RateLimitRule defines the configuration for a specific rate limit.
type RateLimitRule struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	AdminAPI RateLimitRule `mapstructure:"admin_api"`
}

type SecurityConfig struct {
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

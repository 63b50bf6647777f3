package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file and environment variables.
// Environment variables use the DIRECTORY_ prefix with dots replaced by
// underscores, e.g. DIRECTORY_IDENTITY_SERVICE_KEY.
func LoadConfig() (*Config, error) {
	// A local .env is optional; ignore absence.
	_ = godotenv.Load()

	setDefaults()

	env := strings.ToLower(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(fmt.Sprintf("config.%s", env))
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/directory-service")
	}

	viper.SetEnvPrefix("DIRECTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine; environment variables carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Identity.BaseURL == "" {
		return nil, fmt.Errorf("identity.base_url is required")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.migrations_path", "migrations")
	viper.SetDefault("identity.page_size", 1000)
	viper.SetDefault("identity.timeout", "10s")
	viper.SetDefault("admin.display_name", "EnrichX Admin")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("security.rate_limiting.enabled", false)
	viper.SetDefault("security.rate_limiting.admin_api.limit", 120)
	viper.SetDefault("security.rate_limiting.admin_api.window", "1m")
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the coverage service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port of the HTTP server (API, health checks and metrics).
// - APIURL: Base URL of the remote coverage API.
// - FetchLimit: Maximum number of ZIP codes requested from the coverage API.
// - Interval: The duration between sync and address check rounds.
// - Workers: The number of concurrent workers for address checks.
// - ProviderType: The reverse geocoding provider (google, nominatim, visicom, none).
// - APIKey: The API key of the geocoding provider.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         `mapstructure:"env"`
	Port         int            `mapstructure:"http_port"`
	APIURL       string         `mapstructure:"api_url"`
	FetchLimit   int            `mapstructure:"api_limit"`
	Interval     time.Duration  `mapstructure:"sync_interval"`
	Workers      int            `mapstructure:"workers"`
	ProviderType string         `mapstructure:"provider_type"`
	APIKey       string         `mapstructure:"provider_key"`
	Database     PostgresConfig `mapstructure:"-"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads an optional .env file and the environment into a Config.
// The .env path can be overridden with COVERAGE_ENV_FILE.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	envFile := ".env"
	if path, ok := os.LookupEnv("COVERAGE_ENV_FILE"); ok {
		envFile = path
	}
	_ = godotenv.Load(envFile)

	vpr := viper.New()
	vpr.SetEnvPrefix("COVERAGE")
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("http_port", 8080)
	vpr.SetDefault("api_url", "http://localhost:5000/api/v1")
	vpr.SetDefault("api_limit", 10000)
	vpr.SetDefault("sync_interval", "10m")
	vpr.SetDefault("workers", 10)
	vpr.SetDefault("provider_type", "google")
	vpr.SetDefault("provider_key", "")

	mustValidate(vpr)

	cfg := &Config{}
	if err := vpr.Unmarshal(cfg); err != nil {
		panic("failed to decode configuration")
	}

	cfg.Database = PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     setDefaultEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	return cfg
}

// mustValidate rejects malformed values with a message naming the setting.
func mustValidate(vpr *viper.Viper) {
	if _, err := time.ParseDuration(vpr.GetString("sync_interval")); err != nil {
		panic("failed to parse interval from configuration")
	}

	if _, err := parseInt(vpr, "http_port"); err != nil {
		panic("failed to parse port for http server from configuration")
	}

	if workers, err := parseInt(vpr, "workers"); err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	if _, err := parseInt(vpr, "api_limit"); err != nil {
		panic("failed to parse coverage api limit from configuration")
	}
}

func parseInt(vpr *viper.Viper, key string) (int, error) {
	return cast.ToIntE(vpr.Get(key))
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// List failure policies decide what GET /locations does when the weather
// provider fails for a single location.
const (
	ListFailurePlaceholder = "placeholder" // zero-valued weather for that row
	ListFailureFail        = "fail"        // the whole request fails
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Weather  WeatherConfig
	Geocode  GeocodeConfig
	Catalog  CatalogConfig
	Events   EventsConfig
	App      AppConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	GinMode         string // debug, release, test
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig selects the location store
type DatabaseConfig struct {
	Driver string // postgres, sqlite
	URL    string // postgres connection string
	Path   string // sqlite file
}

// WeatherConfig holds Open-Meteo client settings
type WeatherConfig struct {
	BaseURL      string
	Timeout      time.Duration // 0 means no client timeout
	ForecastDays int
}

// GeocodeConfig enables country lookup for new locations
type GeocodeConfig struct {
	Enabled   bool
	BaseURL   string
	UserAgent string
}

// CatalogConfig points at the CSV of available cities. Path wins over S3.
type CatalogConfig struct {
	Path string
	S3   S3Config
}

// S3Config locates the catalog object in S3-compatible storage
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Object    string
	UseSSL    bool
}

// EventsConfig holds Kafka settings for location events. Empty brokers disables publishing.
type EventsConfig struct {
	Brokers []string
	Topic   string
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	WeatherConcurrency int    // max in-flight weather calls for GET /locations
	ListFailurePolicy  string // placeholder, fail
}

// Load reads configuration from .env, file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weather-dashboard")

	// Set defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "postgres://postgres:postgres@db:5432/weather_db")
	v.SetDefault("database.path", "weather.db")
	v.SetDefault("weather.baseURL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.timeout", time.Duration(0))
	v.SetDefault("weather.forecastDays", 7)
	v.SetDefault("geocode.enabled", false)
	v.SetDefault("geocode.baseURL", "https://nominatim.openstreetmap.org/reverse")
	v.SetDefault("geocode.userAgent", "weather-dashboard/1.0")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.s3.endpoint", "")
	v.SetDefault("catalog.s3.accessKey", "")
	v.SetDefault("catalog.s3.secretKey", "")
	v.SetDefault("catalog.s3.region", "")
	v.SetDefault("catalog.s3.bucket", "")
	v.SetDefault("catalog.s3.object", "cities.csv")
	v.SetDefault("catalog.s3.useSSL", false)
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "locations")
	v.SetDefault("app.weatherConcurrency", 4)
	v.SetDefault("app.listFailurePolicy", ListFailurePlaceholder)

	// Read from environment variables, e.g. WEATHER_DASHBOARD_DATABASE_URL
	v.SetEnvPrefix("WEATHER_DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", "WEATHER_DASHBOARD_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}

	switch c.App.ListFailurePolicy {
	case ListFailurePlaceholder, ListFailureFail:
	default:
		return fmt.Errorf("unknown app.listFailurePolicy %q", c.App.ListFailurePolicy)
	}

	if c.App.WeatherConcurrency < 1 {
		return fmt.Errorf("app.weatherConcurrency must be at least 1, got %d", c.App.WeatherConcurrency)
	}

	// Open-Meteo serves at most 16 days
	if c.Weather.ForecastDays < 1 || c.Weather.ForecastDays > 16 {
		return fmt.Errorf("weather.forecastDays must be between 1 and 16, got %d", c.Weather.ForecastDays)
	}

	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return errors.New("events.topic is required when events.brokers is set")
	}

	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

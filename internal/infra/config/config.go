package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/yanqian/weatherly/pkg/errors"
)

// Config aggregates runtime configuration used across the dashboard.
type Config struct {
	Weather   WeatherConfig   `yaml:"weather"`
	Storage   StorageConfig   `yaml:"storage"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// WeatherConfig contains OpenWeatherMap settings.
type WeatherConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Units   string        `yaml:"units"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig selects and configures the archive bucket.
type StorageConfig struct {
	Driver    string `yaml:"driver"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// DashboardConfig controls the city list and report.
type DashboardConfig struct {
	Cities      []string `yaml:"cities"`
	Interactive bool     `yaml:"interactive"`
	Timezone    string   `yaml:"timezone"`
}

// MetricsConfig points at a node-exporter textfile; empty disables the flush.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Storage drivers.
const (
	DriverS3     = "s3"
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Load reads configuration from a YAML file, an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "load config file", err)
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "load config file", err)
		}
	}

	// Values already present in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "load .env file", err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "invalid config", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("OPENWEATHER_UNITS"); v != "" {
		cfg.Weather.Units = v
	}
	if v := os.Getenv("OPENWEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("AWS_BUCKET_NAME"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("DASHBOARD_CITIES"); v != "" {
		cfg.Dashboard.Cities = splitList(v)
	}
	if v := os.Getenv("DASHBOARD_INTERACTIVE"); v != "" {
		cfg.Dashboard.Interactive = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DASHBOARD_TIMEZONE"); v != "" {
		cfg.Dashboard.Timezone = v
	}
	if v := os.Getenv("METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		Weather: WeatherConfig{
			BaseURL: "http://api.openweathermap.org/data/2.5",
			Units:   "imperial",
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver: DriverS3,
			Region: "us-east-1",
		},
		Dashboard: DashboardConfig{
			Cities:      []string{"Lagos", "New York", "Doha"},
			Interactive: true,
		},
	}
}

// Location resolves the dashboard timezone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Dashboard.Timezone) == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Dashboard.Timezone)
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return errors.New("weather.apiKey cannot be empty (set OPENWEATHER_API_KEY)")
	}
	if strings.TrimSpace(c.Weather.BaseURL) == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	switch c.Weather.Units {
	case "imperial", "metric", "standard":
	default:
		return fmt.Errorf("weather.units must be imperial, metric or standard, got %q", c.Weather.Units)
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return errors.New("storage.bucket cannot be empty (set AWS_BUCKET_NAME)")
	}
	switch c.Storage.Driver {
	case DriverS3, DriverMemory:
	case DriverMinio:
		if strings.TrimSpace(c.Storage.Endpoint) == "" {
			return errors.New("storage.endpoint cannot be empty when storage.driver is minio")
		}
	default:
		return fmt.Errorf("storage.driver must be s3, minio or memory, got %q", c.Storage.Driver)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("dashboard.timezone: %w", err)
	}
	return nil
}

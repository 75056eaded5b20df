package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Store     StoreConfig     `mapstructure:"store"`
	Templates TemplatesConfig `mapstructure:"templates"`
	S3        S3Config        `mapstructure:"s3"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	GinMode         string        `mapstructure:"gin_mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"` // empty: stdout only
	Stdout bool   `mapstructure:"stdout"`
	JSON   bool   `mapstructure:"json"`
}

type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// StoreConfig picks where clients and workouts are loaded from at startup.
type StoreConfig struct {
	Source string `mapstructure:"source"` // demo | mongo
}

// TemplatesConfig picks the key-value backend for saved workout templates.
type TemplatesConfig struct {
	Backend     string `mapstructure:"backend"` // memory | mongo | s3
	CacheSizeMB int    `mapstructure:"cache_size_mb"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	Prefix          string `mapstructure:"prefix"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type CalendarConfig struct {
	Timezone           string `mapstructure:"timezone"`
	Navigation         string `mapstructure:"navigation"` // view | month
	FirstHour          int    `mapstructure:"first_hour"`
	LastHour           int    `mapstructure:"last_hour"`
	MonthOverflowCap   int    `mapstructure:"month_overflow_cap"`
	UnknownClientLabel string `mapstructure:"unknown_client_label"`
	UpcomingLimit      int    `mapstructure:"upcoming_limit"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

const (
	SourceDemo  = "demo"
	SourceMongo = "mongo"

	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendS3     = "s3"
)

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("log.json", false)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "trainer_dashboard")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("store.source", SourceDemo)
	v.SetDefault("templates.backend", BackendMemory)
	v.SetDefault("templates.cache_size_mb", 8)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.prefix", "trainer-dashboard/")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.navigation", "view")
	v.SetDefault("calendar.first_hour", 8)
	v.SetDefault("calendar.last_hour", 21)
	v.SetDefault("calendar.month_overflow_cap", 3)
	v.SetDefault("calendar.unknown_client_label", "Unknown client")
	v.SetDefault("calendar.upcoming_limit", 10)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "trainer")
	v.SetDefault("metrics.subsystem", "dashboard")

	err = v.ReadInConfig()
	// A missing file is fine; defaults and env vars still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, config.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Source {
	case SourceDemo, SourceMongo:
	default:
		errs = append(errs, fmt.Errorf("store.source must be %q or %q, got %q", SourceDemo, SourceMongo, c.Store.Source))
	}
	switch c.Templates.Backend {
	case BackendMemory, BackendMongo:
	case BackendS3:
		if c.S3.BucketName == "" {
			errs = append(errs, errors.New("s3.bucket_name is required for the s3 template backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("templates.backend must be memory, mongo or s3, got %q", c.Templates.Backend))
	}
	if _, err := c.Calendar.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Calendar.FirstHour < 0 || c.Calendar.LastHour > 23 || c.Calendar.FirstHour > c.Calendar.LastHour {
		errs = append(errs, fmt.Errorf("calendar hours must satisfy 0 <= first_hour <= last_hour <= 23, got %d..%d",
			c.Calendar.FirstHour, c.Calendar.LastHour))
	}
	return errors.Join(errs...)
}

// Location resolves the calendar timezone.
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

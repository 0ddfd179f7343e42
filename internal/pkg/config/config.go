package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Map       MapConfig       `mapstructure:"map"`
	Session   SessionConfig   `mapstructure:"session"`
	History   HistoryConfig   `mapstructure:"history"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	AllowOrigins string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MapConfig configures the map provider and the search geofence.
// An empty APIKey is allowed: the service reports "key required".
type MapConfig struct {
	APIKey             string  `mapstructure:"api_key"`
	SearchRadiusM      float64 `mapstructure:"search_radius_m"`
	InitialLat         float64 `mapstructure:"initial_lat"`
	InitialLng         float64 `mapstructure:"initial_lng"`
	InitialZoom        int     `mapstructure:"initial_zoom"`
	MobileBreakpointPx int     `mapstructure:"mobile_breakpoint_px"`
}

// KeyRequired reports whether the map provider credential is missing.
func (m MapConfig) KeyRequired() bool { return strings.TrimSpace(m.APIKey) == "" }

// SessionConfig selects the session store. LockLease (seconds) bounds how
// long a crashed replica can hold a session's lock when the store is valkey.
type SessionConfig struct {
	Store     string `mapstructure:"store"`
	TTL       int    `mapstructure:"ttl"`
	LockLease int    `mapstructure:"lock_lease"`
}

type HistoryConfig struct {
	Backend    string `mapstructure:"backend"`
	MaxEntries int    `mapstructure:"max_entries"`
	Key        string `mapstructure:"key"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NATSConfig with an empty URL disables event publishing.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Enabled      bool   `mapstructure:"enabled"`
}

// Store and backend names.
const (
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.allow_origins", "http://localhost:3000, http://localhost:5173")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("map.api_key", "")
	v.SetDefault("map.search_radius_m", 1500)
	v.SetDefault("map.initial_lat", 37.5665)
	v.SetDefault("map.initial_lng", 126.978)
	v.SetDefault("map.initial_zoom", 13)
	v.SetDefault("map.mobile_breakpoint_px", 767)
	v.SetDefault("session.store", BackendMemory)
	v.SetDefault("session.ttl", 3600)
	v.SetDefault("session.lock_lease", 10)
	v.SetDefault("history.backend", BackendMemory)
	v.SetDefault("history.max_entries", 10)
	v.SetDefault("history.key", "tripmap:search-history")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "tripmap")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "tripmap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: TRIPMAP_MAP_API_KEY → map.api_key
	v.SetEnvPrefix("TRIPMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Map.SearchRadiusM <= 0 {
		errs = append(errs, fmt.Sprintf("map.search_radius_m must be positive, got %v", c.Map.SearchRadiusM))
	}
	if c.Map.InitialLat < -90 || c.Map.InitialLat > 90 {
		errs = append(errs, fmt.Sprintf("map.initial_lat must be -90..90, got %v", c.Map.InitialLat))
	}
	if c.Map.InitialLng < -180 || c.Map.InitialLng > 180 {
		errs = append(errs, fmt.Sprintf("map.initial_lng must be -180..180, got %v", c.Map.InitialLng))
	}
	if c.Map.InitialZoom < 0 || c.Map.InitialZoom > 22 {
		errs = append(errs, fmt.Sprintf("map.initial_zoom must be 0-22, got %d", c.Map.InitialZoom))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, "session.ttl must be positive")
	}
	if c.History.MaxEntries <= 0 {
		errs = append(errs, "history.max_entries must be positive")
	}
	if c.History.Key == "" {
		errs = append(errs, "history.key is required")
	}

	switch c.Session.Store {
	case BackendMemory:
	case BackendValkey:
		if c.Valkey.Addr == "" {
			errs = append(errs, "valkey.addr is required when session.store is valkey")
		}
		if c.Session.LockLease <= 0 {
			errs = append(errs, "session.lock_lease must be positive when session.store is valkey")
		}
	default:
		errs = append(errs, fmt.Sprintf("session.store must be memory or valkey, got %q", c.Session.Store))
	}

	switch c.History.Backend {
	case BackendMemory:
	case BackendValkey:
		if c.Valkey.Addr == "" {
			errs = append(errs, "valkey.addr is required when history.backend is valkey")
		}
	case BackendPostgres:
		errs = append(errs, c.Database.validate()...)
	default:
		errs = append(errs, fmt.Sprintf("history.backend must be memory, valkey or postgres, got %q", c.History.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (d DatabaseConfig) validate() []string {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if d.Port <= 0 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user is required")
	}
	if d.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	return errs
}

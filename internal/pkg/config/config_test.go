package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 10},
		Map:     MapConfig{SearchRadiusM: 1500, InitialLat: 37.5665, InitialLng: 126.978, InitialZoom: 13},
		Session: SessionConfig{Store: BackendMemory, TTL: 3600},
		History: HistoryConfig{Backend: BackendMemory, MaxEntries: 10, Key: "tripmap:search-history"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if !cfg.Map.KeyRequired() {
		t.Error("empty api key should report key required")
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Map.SearchRadiusM = 0
	cfg.History.Backend = "sqlite"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "map.search_radius_m", "history.backend"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidate_PostgresHistoryNeedsDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.History.Backend = BackendPostgres

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "database.host") {
		t.Fatalf("expected database errors, got %v", err)
	}

	cfg.Database = DatabaseConfig{Host: "localhost", Port: 5432, User: "tripmap", DBName: "tripmap"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ValkeySessionsNeedLockLease(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Store = BackendValkey
	cfg.Valkey.Addr = "localhost:6379"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "session.lock_lease") {
		t.Fatalf("expected lock lease error, got %v", err)
	}

	cfg.Session.LockLease = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIPMAP_MAP_API_KEY", "test-key")
	t.Setenv("TRIPMAP_MAP_SEARCH_RADIUS_M", "2000")
	t.Setenv("TRIPMAP_HISTORY_MAX_ENTRIES", "5")

	cfg, err := Load("tripmap-test")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Map.KeyRequired() {
		t.Error("api key from env was not picked up")
	}
	if cfg.Map.SearchRadiusM != 2000 {
		t.Errorf("radius = %v, want 2000", cfg.Map.SearchRadiusM)
	}
	if cfg.History.MaxEntries != 5 {
		t.Errorf("max entries = %d, want 5", cfg.History.MaxEntries)
	}
	if cfg.Telemetry.ServiceName != "tripmap-test" {
		t.Errorf("service name = %q", cfg.Telemetry.ServiceName)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/samirrijal/tripmap/internal/adapters/http"
	"github.com/samirrijal/tripmap/internal/adapters/memory"
	natsadapter "github.com/samirrijal/tripmap/internal/adapters/nats"
	"github.com/samirrijal/tripmap/internal/adapters/postgres"
	"github.com/samirrijal/tripmap/internal/adapters/valkey"
	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
	"github.com/samirrijal/tripmap/internal/core/ports"
	"github.com/samirrijal/tripmap/internal/core/usecases"
	"github.com/samirrijal/tripmap/internal/pkg/config"
	"github.com/samirrijal/tripmap/internal/pkg/logging"
	"github.com/samirrijal/tripmap/internal/pkg/metrics"
	"github.com/samirrijal/tripmap/internal/pkg/telemetry"
)

const service = "tripmap-api"

func main() {
	// Optional .env keeps the map key out of the shell history.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load(service)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format, service)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	if cfg.Map.KeyRequired() {
		slog.Warn("map.api_key is not set; map sessions are unavailable until it is configured")
	}

	// Cache (optional unless a backend needs it)
	var cache *valkey.Cache
	if needsValkey(cfg) {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			log.Fatalf("valkey: %v", err)
		}
		defer cache.Close()
	} else if c, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, highlights are not cached", "error", err)
	} else {
		cache = c
		defer cache.Close()
	}

	// Database (only for the postgres history backend)
	var db *postgres.DB
	if cfg.History.Backend == config.BackendPostgres {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		go reportPoolStats(ctx, db)
	}

	// NATS (optional)
	var (
		publisher ports.EventPublisher
		events    *natsadapter.Subscriber
	)
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, live session streams disabled", "error", err)
		} else {
			defer pub.Close()
			publisher = pub

			conn, err := natsadapter.RawConn(cfg.NATS.URL)
			if err != nil {
				slog.Warn("nats ws conn unavailable", "error", err)
			} else {
				events = natsadapter.NewSubscriber(conn)
				defer events.Close()
			}
		}
	}

	// Stores
	ttl := time.Duration(cfg.Session.TTL) * time.Second
	var sessions ports.SessionStore
	if cfg.Session.Store == config.BackendValkey {
		sessions = valkey.NewSessionStore(cache, ttl)
	} else {
		mem := memory.NewSessionStore(ttl)
		go mem.RunSweeper(ctx, time.Minute)
		sessions = mem
	}

	var history ports.KeyValueStore
	switch cfg.History.Backend {
	case config.BackendValkey:
		history = cache
	case config.BackendPostgres:
		history = postgres.NewKVStore(db)
	default:
		history = memory.NewKVStore()
	}

	// Use cases
	var highlights ports.CacheService
	if cache != nil {
		highlights = cache
	}
	sessionSvc := usecases.NewMapSessionService(sessions, publisher, usecases.MapSettings{
		APIKey:       cfg.Map.APIKey,
		Center:       domain.GeoPoint{Lat: cfg.Map.InitialLat, Lng: cfg.Map.InitialLng},
		Zoom:         cfg.Map.InitialZoom,
		RadiusMeters: cfg.Map.SearchRadiusM,
	}, mapview.SystemRandom())
	if cfg.Session.Store == config.BackendValkey {
		// replicas share sessions, so events are serialized through valkey
		sessionSvc.WithLocker(valkey.NewSessionLock(cache, time.Duration(cfg.Session.LockLease)*time.Second))
	}
	communitySvc := usecases.NewCommunityService(memory.NewPostRepo(), memory.NewProductCatalog(), highlights)
	historySvc := usecases.NewSearchHistoryService(history, cfg.History.Key, cfg.History.MaxEntries)

	deps := &http.Dependencies{
		Sessions:           sessionSvc,
		Community:          communitySvc,
		History:            historySvc,
		MobileBreakpointPx: cfg.Map.MobileBreakpointPx,
		Events:             events,
		DB:                 db,
		Cache:              cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "TripMap API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, " + http.ViewerHeader,
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps, http.DefaultRouteOptions())

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr,
			"session_store", cfg.Session.Store, "history_backend", cfg.History.Backend,
			"map_status", sessionSvc.Status())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func needsValkey(cfg *config.Config) bool {
	return cfg.Session.Store == config.BackendValkey || cfg.History.Backend == config.BackendValkey
}

func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Stat())
		}
	}
}

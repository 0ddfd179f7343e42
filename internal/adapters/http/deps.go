package http

import (
	natsadapter "github.com/samirrijal/tripmap/internal/adapters/nats"
	"github.com/samirrijal/tripmap/internal/adapters/postgres"
	"github.com/samirrijal/tripmap/internal/adapters/valkey"
	"github.com/samirrijal/tripmap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// Infrastructure fields are nil when the backend is not configured.
type Dependencies struct {
	Sessions  *usecases.MapSessionService
	Community *usecases.CommunityService
	History   *usecases.SearchHistoryService

	// MobileBreakpointPx classifies a reported viewport width as mobile
	// when it is at or below this value.
	MobileBreakpointPx int

	Events *natsadapter.Subscriber
	DB     *postgres.DB
	Cache  *valkey.Cache
}

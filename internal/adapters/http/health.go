package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	checkOK            = "ok"
	checkNotConfigured = "not configured"
)

var errDisconnected = errors.New("disconnected")

// probe is one readiness dependency. A nil check means the backend is not
// configured and the in-memory stand-in is serving instead.
type probe struct {
	name  string
	check func(ctx context.Context) error
}

func readinessProbes(deps *Dependencies) []probe {
	probes := []probe{{name: "database"}, {name: "nats"}, {name: "cache"}}
	if deps.DB != nil {
		probes[0].check = deps.DB.Ping
	}
	if deps.Events != nil {
		probes[1].check = func(context.Context) error {
			if !deps.Events.Connected() {
				return errDisconnected
			}
			return nil
		}
	}
	if deps.Cache != nil {
		probes[2].check = deps.Cache.Ping
	}
	return probes
}

// HealthHandler is the liveness check. It also reports whether the map
// provider key is configured.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "healthy",
			"uptime":     time.Since(startedAt).Round(time.Second).String(),
			"map_status": deps.Sessions.Status(),
		})
	}
}

// ReadyHandler runs the readiness probes. A missing map key is reported
// but does not fail readiness.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	probes := readinessProbes(deps)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string, len(probes)+1)
		ready := true
		for _, p := range probes {
			switch {
			case p.check == nil:
				checks[p.name] = checkNotConfigured
			default:
				if err := p.check(ctx); err != nil {
					checks[p.name] = "error: " + err.Error()
					ready = false
					LoggerFromCtx(c.UserContext()).Warn("readiness probe failed", "probe", p.name, "error", err)
				} else {
					checks[p.name] = checkOK
				}
			}
		}
		checks["map_provider"] = deps.Sessions.Status()

		if !ready {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "checks": checks})
		}
		return c.JSON(fiber.Map{"status": "ready", "checks": checks})
	}
}

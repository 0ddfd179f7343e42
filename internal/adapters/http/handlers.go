package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/usecases"
)

// CategoryOption is one entry of the taxonomy tree.
type CategoryOption struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Color   string           `json:"color,omitempty"`
	Detail  bool             `json:"detail_eligible,omitempty"`
	Options []CategoryOption `json:"options,omitempty"`
}

func taxonomy() []CategoryOption {
	out := make([]CategoryOption, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		opt := CategoryOption{ID: string(cat), Label: cat.Label()}
		if cat != domain.CategoryAll {
			t := domain.POIType(cat)
			opt.Color = t.MarkerColor()
			opt.Detail = t.DetailEligible()
		}
		if cat == domain.Category(domain.TypeSpot) {
			for _, sub := range domain.SpotSubs {
				so := CategoryOption{ID: string(sub), Label: sub.Label()}
				for _, s2 := range sub.Options() {
					so.Options = append(so.Options, CategoryOption{ID: string(s2), Label: s2.Label()})
				}
				opt.Options = append(opt.Options, so)
			}
		}
		out = append(out, opt)
	}
	return out
}

// CategoriesHandler returns the category taxonomy.
func CategoriesHandler() fiber.Handler {
	tree := taxonomy()
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(tree)
	}
}

// MapStatusHandler reports whether the map provider is configured.
func MapStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": deps.Sessions.Status()})
	}
}

// layoutRequest carries either an explicit flag or a measured width.
type layoutRequest struct {
	Mobile        *bool `json:"mobile"`
	ViewportWidth *int  `json:"viewport_width"`
}

func (r layoutRequest) isMobile(breakpoint int) (bool, bool) {
	switch {
	case r.Mobile != nil:
		return *r.Mobile, true
	case r.ViewportWidth != nil:
		return *r.ViewportWidth <= breakpoint, true
	}
	return false, false
}

func parseOptional(c *fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(v)
}

// CreateSessionHandler starts a map session.
func CreateSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req layoutRequest
		if err := parseOptional(c, &req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		mobile, _ := req.isMobile(deps.MobileBreakpointPx)

		sv, err := deps.Sessions.Create(c.UserContext(), mobile)
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Location("/v1/sessions/" + sv.ID)
		return c.Status(fiber.StatusCreated).JSON(sv)
	}
}

// GetSessionHandler returns the current view of a session.
func GetSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sv, err := deps.Sessions.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sv)
	}
}

// DeleteSessionHandler drops a session.
func DeleteSessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Sessions.Delete(c.UserContext(), c.Params("id")); err != nil {
			return errFromDomain(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// IdleHandler applies a map idle event.
func IdleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vp domain.Viewport
		if err := c.BodyParser(&vp); err != nil {
			return errBadRequest(c, "invalid viewport body")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.Idle(c.UserContext(), c.Params("id"), vp)
		})
	}
}

// SearchAgainHandler regenerates POIs around the current map center. The
// body may carry a fresher viewport than the last idle event.
func SearchAgainHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vp domain.Viewport
		if err := parseOptional(c, &vp); err != nil {
			return errBadRequest(c, "invalid viewport body")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.SearchAgain(c.UserContext(), c.Params("id"), vp)
		})
	}
}

// SetFiltersHandler applies a category selection.
func SetFiltersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f domain.FilterSelection
		if err := c.BodyParser(&f); err != nil {
			return errBadRequest(c, "invalid filter body")
		}
		if f.Category == "" {
			f.Category = domain.CategoryAll
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.SetFilters(c.UserContext(), c.Params("id"), f)
		})
	}
}

type poiRequest struct {
	ID string `json:"id"`
}

func poiHandler(fn func(c *fiber.Ctx, sessionID, poiID string) (*usecases.SessionView, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req poiRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		req.ID = strings.TrimSpace(req.ID)
		if req.ID == "" {
			return errBadRequest(c, "id is required")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return fn(c, c.Params("id"), req.ID)
		})
	}
}

// SelectHandler highlights a visible POI from the list.
func SelectHandler(deps *Dependencies) fiber.Handler {
	return poiHandler(func(c *fiber.Ctx, sid, pid string) (*usecases.SessionView, error) {
		return deps.Sessions.Select(c.UserContext(), sid, pid)
	})
}

// OpenDetailHandler expands a visible POI.
func OpenDetailHandler(deps *Dependencies) fiber.Handler {
	return poiHandler(func(c *fiber.Ctx, sid, pid string) (*usecases.SessionView, error) {
		return deps.Sessions.OpenDetail(c.UserContext(), sid, pid)
	})
}

// MarkerClickHandler handles a tap on a map marker.
func MarkerClickHandler(deps *Dependencies) fiber.Handler {
	return poiHandler(func(c *fiber.Ctx, sid, pid string) (*usecases.SessionView, error) {
		return deps.Sessions.MarkerClicked(c.UserContext(), sid, pid)
	})
}

// CloseDetailHandler collapses the detail view.
func CloseDetailHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.CloseDetail(c.UserContext(), c.Params("id"))
		})
	}
}

// CarouselHandler reports a mobile carousel scroll frame.
func CarouselHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var frame domain.CarouselFrame
		if err := c.BodyParser(&frame); err != nil {
			return errBadRequest(c, "invalid carousel frame")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.CarouselScrolled(c.UserContext(), c.Params("id"), frame)
		})
	}
}

// LayoutHandler switches between desktop and mobile presentation.
func LayoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req layoutRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		mobile, ok := req.isMobile(deps.MobileBreakpointPx)
		if !ok {
			return errBadRequest(c, "mobile or viewport_width is required")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.SetLayout(c.UserContext(), c.Params("id"), mobile)
		})
	}
}

type regionViewRequest struct {
	Enabled     bool                `json:"enabled"`
	SidebarMode *domain.SidebarMode `json:"sidebar_mode"`
}

// RegionViewHandler toggles the region decoration.
func RegionViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req regionViewRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		return respond(c, func() (*usecases.SessionView, error) {
			return deps.Sessions.SetRegionView(c.UserContext(), c.Params("id"), req.Enabled, req.SidebarMode)
		})
	}
}

func respond(c *fiber.Ctx, fn func() (*usecases.SessionView, error)) error {
	sv, err := fn()
	if err != nil {
		return errFromDomain(c, err)
	}
	return c.JSON(sv)
}

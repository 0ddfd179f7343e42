package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
	"github.com/samirrijal/tripmap/internal/core/ports"
	"github.com/samirrijal/tripmap/internal/pkg/metrics"
	"github.com/samirrijal/tripmap/internal/pkg/telemetry"
)

// Provider status values reported by Status.
const (
	ProviderReady       = "ready"
	ProviderKeyRequired = "key_required"
)

// MapSettings configures new sessions.
type MapSettings struct {
	APIKey       string
	Center       domain.GeoPoint
	Zoom         int
	RadiusMeters float64
}

// SessionView is a session's render model plus the commands produced by
// the last transition.
type SessionView struct {
	ID         string           `json:"id"`
	View       mapview.View     `json:"view"`
	Commands   []domain.Command `json:"commands"`
	NoViewport bool             `json:"no_viewport"`
}

// MapSessionService runs map events against stored session state. Events
// for one session are applied one at a time; each loads the state, applies
// a single transition to a copy, and saves the copy whole.
type MapSessionService struct {
	store     ports.SessionStore
	publisher ports.EventPublisher
	ctrl      *mapview.Controller
	settings  MapSettings
	locker    ports.SessionLocker
	newID     func() string
}

// NewMapSessionService creates a new MapSessionService. publisher may be nil.
func NewMapSessionService(
	store ports.SessionStore,
	publisher ports.EventPublisher,
	settings MapSettings,
	rnd mapview.Random,
) *MapSessionService {
	return &MapSessionService{
		store:     store,
		publisher: publisher,
		ctrl:      mapview.NewController(rnd),
		settings:  settings,
		locker:    processLocker{keys: newKeyedMutex()},
		newID:     uuid.NewString,
	}
}

// WithLocker replaces the in-process session lock, for deployments where
// several replicas share one session store.
func (s *MapSessionService) WithLocker(l ports.SessionLocker) *MapSessionService {
	if l != nil {
		s.locker = l
	}
	return s
}

// Status reports whether the map provider credential is configured.
func (s *MapSessionService) Status() string {
	if s.settings.APIKey == "" {
		return ProviderKeyRequired
	}
	return ProviderReady
}

func (s *MapSessionService) available() error {
	if s.Status() != ProviderReady {
		return domain.ErrProviderUnavailable
	}
	return nil
}

// Create starts a new session centered on the configured initial view.
func (s *MapSessionService) Create(ctx context.Context, mobile bool) (*SessionView, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSessionCreate)
	defer span.End()

	id := s.newID()
	st := mapview.NewState(mapview.Options{
		Center:       s.settings.Center,
		Zoom:         s.settings.Zoom,
		RadiusMeters: s.settings.RadiusMeters,
		Mobile:       mobile,
	})
	if err := s.store.Save(ctx, id, st); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.SessionsCreated.Inc()
	span.SetAttributes(attribute.String("session.id", id))
	slog.DebugContext(ctx, "map session created", "session_id", id, "mobile", mobile)

	return &SessionView{ID: id, View: mapview.BuildView(st), Commands: []domain.Command{}}, nil
}

// Get returns the current view of a session.
func (s *MapSessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	st, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SessionView{ID: id, View: mapview.BuildView(st), Commands: []domain.Command{}}, nil
}

// Delete drops a session.
func (s *MapSessionService) Delete(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return fmt.Errorf("lock session: %w", err)
	}
	defer unlock()
	return s.store.Delete(ctx, id)
}

// Idle applies a map idle event.
func (s *MapSessionService) Idle(ctx context.Context, id string, vp domain.Viewport) (*SessionView, error) {
	return s.apply(ctx, id, "idle", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.Idle(st, vp)
	})
}

// SearchAgain regenerates POIs around the current map center.
func (s *MapSessionService) SearchAgain(ctx context.Context, id string, vp domain.Viewport) (*SessionView, error) {
	return s.apply(ctx, id, "search_again", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.SearchAgain(st, vp)
	})
}

// SetFilters applies a category selection.
func (s *MapSessionService) SetFilters(ctx context.Context, id string, f domain.FilterSelection) (*SessionView, error) {
	return s.apply(ctx, id, "filters", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.SetFilters(st, f.Category, f.SpotSub, f.SpotSub2)
	})
}

// Select highlights a visible POI.
func (s *MapSessionService) Select(ctx context.Context, id, poiID string) (*SessionView, error) {
	return s.apply(ctx, id, "select", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.Select(st, poiID)
	})
}

// OpenDetail selects a POI and opens its detail view when eligible.
func (s *MapSessionService) OpenDetail(ctx context.Context, id, poiID string) (*SessionView, error) {
	return s.apply(ctx, id, "open_detail", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.OpenDetail(st, poiID)
	})
}

// MarkerClicked handles a tap on a map marker.
func (s *MapSessionService) MarkerClicked(ctx context.Context, id, poiID string) (*SessionView, error) {
	return s.apply(ctx, id, "marker", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.MarkerClicked(st, poiID)
	})
}

// CloseDetail collapses the detail view.
func (s *MapSessionService) CloseDetail(ctx context.Context, id string) (*SessionView, error) {
	return s.apply(ctx, id, "close_detail", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.CloseDetail(st)
	})
}

// CarouselScrolled applies a mobile carousel frame.
func (s *MapSessionService) CarouselScrolled(ctx context.Context, id string, frame domain.CarouselFrame) (*SessionView, error) {
	return s.apply(ctx, id, "carousel", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.CarouselScrolled(st, frame)
	})
}

// SetLayout switches between desktop and mobile.
func (s *MapSessionService) SetLayout(ctx context.Context, id string, mobile bool) (*SessionView, error) {
	layout := domain.LayoutDesktop
	if mobile {
		layout = domain.LayoutMobile
	}
	return s.apply(ctx, id, "layout", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.SetLayout(st, layout)
	})
}

// SetRegionView toggles the region decoration.
func (s *MapSessionService) SetRegionView(ctx context.Context, id string, enabled bool, mode *domain.SidebarMode) (*SessionView, error) {
	return s.apply(ctx, id, "region_view", func(st *mapview.State) (mapview.Outcome, error) {
		return s.ctrl.SetRegionView(st, enabled, mode)
	})
}

func (s *MapSessionService) apply(
	ctx context.Context,
	id, event string,
	fn func(*mapview.State) (mapview.Outcome, error),
) (*SessionView, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSessionEvent, trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("event", event),
	))
	defer span.End()

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("lock session: %w", err)
	}
	defer unlock()

	current, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	out, err := fn(next)
	if err != nil {
		if !isClientError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, err
	}

	if err := s.store.Save(ctx, id, next); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.record(ctx, span, id, event, next, out)

	sv := &SessionView{
		ID:         id,
		View:       mapview.BuildView(next),
		Commands:   out.Commands,
		NoViewport: out.NoViewport,
	}
	s.publish(ctx, sv)
	return sv, nil
}

func (s *MapSessionService) record(ctx context.Context, span trace.Span, id, event string, st *mapview.State, out mapview.Outcome) {
	metrics.SessionEvents.WithLabelValues(event).Inc()
	metrics.VisiblePOIs.Observe(float64(len(st.Visible)))

	span.SetAttributes(
		attribute.Int("pois.visible", len(st.Visible)),
		attribute.Int("commands", len(out.Commands)),
	)

	if out.Regenerated > 0 {
		metrics.Regenerations.WithLabelValues(event).Inc()
		metrics.POIsGenerated.Add(float64(out.Regenerated))
		span.AddEvent(telemetry.SpanRegenerate, trace.WithAttributes(attribute.Int("pois.generated", out.Regenerated)))
		slog.DebugContext(ctx, "pois regenerated",
			"session_id", id, "trigger", event, "count", out.Regenerated, "zoom", st.Zoom)
	}
	for _, inv := range out.Invalidated {
		metrics.SelectionInvalidations.WithLabelValues(inv.Field).Inc()
		slog.DebugContext(ctx, "selection invalidated",
			"session_id", id, "field", inv.Field, "poi_id", inv.ID)
	}
}

// publish fans the transition out to stream subscribers. Broker failures
// never fail the request.
func (s *MapSessionService) publish(ctx context.Context, sv *SessionView) {
	if s.publisher == nil {
		return
	}
	if len(sv.Commands) > 0 {
		if err := s.publisher.PublishCommands(ctx, sv.ID, sv.Commands); err != nil {
			slog.WarnContext(ctx, "publish commands failed", "session_id", sv.ID, "error", err)
		}
	}
	data, err := json.Marshal(sv.View)
	if err != nil {
		return
	}
	if err := s.publisher.PublishState(ctx, sv.ID, data); err != nil {
		slog.WarnContext(ctx, "publish state failed", "session_id", sv.ID, "error", err)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrUnknownPOI) ||
		errors.Is(err, domain.ErrInvalidFilter) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidViewport)
}

package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/ports"
	"github.com/samirrijal/tripmap/internal/pkg/telemetry"
)

// SearchHistoryService keeps the recent forum searches, newest first,
// without duplicates, as one JSON array under a single key.
type SearchHistoryService struct {
	store ports.KeyValueStore
	key   string
	max   int
	mu    sync.Mutex
}

// NewSearchHistoryService creates a new SearchHistoryService.
func NewSearchHistoryService(store ports.KeyValueStore, key string, max int) *SearchHistoryService {
	if max <= 0 {
		max = 10
	}
	return &SearchHistoryService{store: store, key: key, max: max}
}

// List returns the stored searches.
func (s *SearchHistoryService) List(ctx context.Context) ([]string, error) {
	return s.load(ctx)
}

// Record moves query to the front of the history.
func (s *SearchHistoryService) Record(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanHistoryRecord)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, s.max)
	next = append(next, query)
	for _, q := range current {
		if len(next) == s.max {
			break
		}
		if q != query {
			next = append(next, q)
		}
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, s.key, data); err != nil {
		return nil, fmt.Errorf("store search history: %w", err)
	}
	return next, nil
}

// Clear forgets every search.
func (s *SearchHistoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *SearchHistoryService) load(ctx context.Context) ([]string, error) {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}

	var history []string
	if err := json.Unmarshal(data, &history); err != nil {
		slog.WarnContext(ctx, "discarding unreadable search history", "key", s.key, "error", err)
		return []string{}, nil
	}
	if len(history) > s.max {
		history = history[:s.max]
	}
	return history, nil
}

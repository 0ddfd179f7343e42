package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
)

// --- Mock SessionStore ---

type mockSessionStore struct {
	mu     sync.Mutex
	states map[string]*mapview.State
	saves  int
	saveFn func(ctx context.Context, id string, st *mapview.State) error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{states: map[string]*mapview.State{}}
}

func (m *mockSessionStore) Load(ctx context.Context, id string) (*mapview.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return st.Clone(), nil
}

func (m *mockSessionStore) Save(ctx context.Context, id string, st *mapview.State) error {
	if m.saveFn != nil {
		if err := m.saveFn(ctx, id, st); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = st.Clone()
	m.saves++
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.states[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.states, id)
	return nil
}

func (m *mockSessionStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	mu       sync.Mutex
	commands [][]domain.Command
	states   int
}

func (m *mockPublisher) PublishCommands(ctx context.Context, sessionID string, cmds []domain.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, cmds)
	return nil
}

func (m *mockPublisher) PublishState(ctx context.Context, sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states++
	return nil
}

// --- Mock PostRepository ---

type mockPostRepo struct {
	listFn         func(ctx context.Context) ([]domain.Post, error)
	getByIDFn      func(ctx context.Context, id int) (*domain.Post, error)
	createFn       func(ctx context.Context, post *domain.Post) error
	listCommentsFn func(ctx context.Context, postID int) ([]domain.Comment, error)
	addCommentFn   func(ctx context.Context, c *domain.Comment) error
	toggleLikeFn   func(ctx context.Context, postID int, viewerID string) (bool, error)
	likedFn        func(ctx context.Context, postID int, viewerID string) (bool, error)
}

func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int) (*domain.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) ListComments(ctx context.Context, postID int) ([]domain.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockPostRepo) AddComment(ctx context.Context, c *domain.Comment) error {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, c)
	}
	return nil
}

func (m *mockPostRepo) ToggleLike(ctx context.Context, postID int, viewerID string) (bool, error) {
	if m.toggleLikeFn != nil {
		return m.toggleLikeFn(ctx, postID, viewerID)
	}
	return false, nil
}

func (m *mockPostRepo) Liked(ctx context.Context, postID int, viewerID string) (bool, error) {
	if m.likedFn != nil {
		return m.likedFn(ctx, postID, viewerID)
	}
	return false, nil
}

// --- Mock ProductCatalog ---

type mockCatalog struct {
	products map[int][]domain.RelatedProduct
}

func (m *mockCatalog) RelatedToPost(ctx context.Context, postID int) ([]domain.RelatedProduct, error) {
	return m.products[postID], nil
}

// --- Mock CacheService ---

type mockCache struct {
	data    map[string][]byte
	deletes []string
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	m.deletes = append(m.deletes, key)
	return nil
}

// --- Mock KeyValueStore ---

type mockKV struct {
	data  map[string][]byte
	putFn func(key string, value []byte) error
}

func newMockKV() *mockKV { return &mockKV{data: map[string][]byte{}} }

func (m *mockKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockKV) Put(ctx context.Context, key string, value []byte) error {
	if m.putFn != nil {
		if err := m.putFn(key, value); err != nil {
			return err
		}
	}
	m.data[key] = value
	return nil
}

func (m *mockKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

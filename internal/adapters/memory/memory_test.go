package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
)

func TestSessionStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(time.Hour)

	st := mapview.NewState(mapview.Options{Zoom: 13, RadiusMeters: 1500})
	if err := s.Save(ctx, "a", st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == st {
		t.Error("expected a copy, got the saved pointer")
	}
	if got.Zoom != 13 {
		t.Errorf("zoom = %d, want 13", got.Zoom)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(time.Minute)
	now := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, "a", mapview.NewState(mapview.Options{}))
	now = now.Add(59 * time.Second)
	if _, err := s.Load(ctx, "a"); err != nil {
		t.Fatalf("load before expiry: %v", err)
	}

	now = now.Add(time.Second)
	if _, err := s.Load(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected expired session, got %v", err)
	}
	if n := s.Sweep(); n != 1 {
		t.Errorf("sweep removed %d, want 1", n)
	}
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	v := []byte(`["a"]`)
	_ = s.Put(ctx, "k", v)
	v[2] = 'b'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `["a"]` {
		t.Errorf("stored value changed through caller slice: %s", got)
	}

	_ = s.Delete(ctx, "k")
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProductCatalog_RelatedToPost(t *testing.T) {
	c := NewProductCatalog()
	ctx := context.Background()

	tests := []struct {
		post int
		want []string
	}{
		{1, []string{"hanbokA", "studio"}},
		{2, []string{"hanbokA", "hanbokB"}},
		{3, []string{"hanbokA", "hanbokB"}},
		{5, []string{"hanbokA"}},
		{6, nil},
	}
	for _, tt := range tests {
		got, err := c.RelatedToPost(ctx, tt.post)
		if err != nil {
			t.Fatalf("post %d: %v", tt.post, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("post %d: got %d products, want %d", tt.post, len(got), len(tt.want))
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("post %d [%d]: got %s, want %s", tt.post, i, got[i].ID, id)
			}
		}
	}
}

func TestPostRepo_Seeded(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()

	posts, _ := r.List(ctx)
	if len(posts) != 7 {
		t.Fatalf("expected 7 seeded posts, got %d", len(posts))
	}
	if posts[0].Title != "Gyeongbokgung Palace Night Tour" || !posts[0].IsHighlight {
		t.Errorf("unexpected first post: %+v", posts[0])
	}
	if posts[6].Category != domain.PostTravelPlan {
		t.Errorf("post 7 category = %s", posts[6].Category)
	}

	comments, err := r.ListComments(ctx, 3)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "Great info on post 3!" {
		t.Errorf("unexpected comments: %+v", comments)
	}
}

func TestPostRepo_CreateAssignsNextID(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()

	p := &domain.Post{Category: domain.PostTalk, Title: "hi"}
	_ = r.Create(ctx, p)
	if p.ID != 8 {
		t.Errorf("id = %d, want 8", p.ID)
	}
	if _, err := r.GetByID(ctx, 8); err != nil {
		t.Errorf("get created post: %v", err)
	}
}

func TestPostRepo_ToggleLike(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()

	liked, err := r.ToggleLike(ctx, 1, "v1")
	if err != nil || !liked {
		t.Fatalf("first toggle: liked=%v err=%v", liked, err)
	}
	p, _ := r.GetByID(ctx, 1)
	if p.Likes != 1 {
		t.Errorf("likes = %d, want 1", p.Likes)
	}
	if ok, _ := r.Liked(ctx, 1, "v1"); !ok {
		t.Error("expected v1 to have liked post 1")
	}

	liked, _ = r.ToggleLike(ctx, 1, "v1")
	if liked {
		t.Error("second toggle should unlike")
	}
	p, _ = r.GetByID(ctx, 1)
	if p.Likes != 0 {
		t.Errorf("likes = %d, want 0", p.Likes)
	}

	if _, err := r.ToggleLike(ctx, 99, "v1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepo_ConcurrentCommentsAndLikes(t *testing.T) {
	r := NewPostRepo()
	ctx := context.Background()
	before, _ := r.GetByID(ctx, 1)

	const n = 500
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c := &domain.Comment{ID: fmt.Sprintf("c-%d", i), PostID: 1, Content: "hi"}
			if err := r.AddComment(ctx, c); err != nil {
				t.Errorf("add comment: %v", err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			if _, err := r.ToggleLike(ctx, 1, fmt.Sprintf("viewer-%d", i)); err != nil {
				t.Errorf("toggle like: %v", err)
			}
		}(i)
	}
	wg.Wait()

	after, _ := r.GetByID(ctx, 1)
	if after.Comments != before.Comments+n {
		t.Errorf("comments = %d, want %d", after.Comments, before.Comments+n)
	}
	if after.Likes != before.Likes+n {
		t.Errorf("likes = %d, want %d", after.Likes, before.Likes+n)
	}
	comments, _ := r.ListComments(ctx, 1)
	if len(comments) != 2+n {
		t.Errorf("stored comments = %d, want %d", len(comments), 2+n)
	}
}

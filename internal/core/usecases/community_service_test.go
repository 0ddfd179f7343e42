package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samirrijal/tripmap/internal/adapters/memory"
	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/usecases"
)

func day(d int) time.Time { return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC) }

func samplePosts() []domain.Post {
	return []domain.Post{
		{ID: 1, Category: domain.PostQuestion, Title: "Gyeongbokgung Palace Night Tour", Date: day(30), Likes: 0, Comments: 2, IsHighlight: true},
		{ID: 2, Category: domain.PostQuestion, Title: "Businesses closed for Chuseok", Date: day(22), Likes: 10, Comments: 6, IsHighlight: true},
		{ID: 3, Category: domain.PostTalk, Title: "Charter transfer service", Date: day(20), Likes: 5, Comments: 1},
		{ID: 6, Category: domain.PostTalk, Title: "Best Korean BBQ in Gangnam", Date: day(10), Likes: 15, Comments: 8, IsHighlight: true},
		{ID: 7, Category: domain.PostTravelPlan, Title: "Looking for travel buddy for Jeju Island", Date: day(8), Likes: 3, Comments: 12, IsHighlight: true},
	}
}

func listRepo() *mockPostRepo {
	return &mockPostRepo{
		listFn: func(ctx context.Context) ([]domain.Post, error) { return samplePosts(), nil },
	}
}

func TestCommunityService_List_Sort(t *testing.T) {
	svc := usecases.NewCommunityService(listRepo(), &mockCatalog{}, nil)
	ctx := context.Background()

	tests := []struct {
		sort  domain.PostSort
		first int
	}{
		{sort: domain.SortLatest, first: 1},
		{sort: domain.SortPopular, first: 6},
		{sort: domain.SortComments, first: 7},
	}
	for _, tt := range tests {
		posts, total, err := svc.List(ctx, usecases.PostQuery{Sort: tt.sort})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 5 {
			t.Errorf("expected total 5, got %d", total)
		}
		if posts[0].ID != tt.first {
			t.Errorf("sort %s: expected post %d first, got %d", tt.sort, tt.first, posts[0].ID)
		}
	}
}

func TestCommunityService_List_FilterAndSearch(t *testing.T) {
	svc := usecases.NewCommunityService(listRepo(), &mockCatalog{}, nil)

	posts, total, err := svc.List(context.Background(), usecases.PostQuery{Category: domain.PostTalk, Search: "  bbq "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || posts[0].ID != 6 {
		t.Errorf("expected only post 6, got %v", posts)
	}

	_, _, err = svc.List(context.Background(), usecases.PostQuery{Category: "GOSSIP"})
	if !errors.Is(err, domain.ErrInvalidPost) {
		t.Errorf("expected ErrInvalidPost, got %v", err)
	}
}

func TestCommunityService_List_Paging(t *testing.T) {
	svc := usecases.NewCommunityService(listRepo(), &mockCatalog{}, nil)

	posts, total, err := svc.List(context.Background(), usecases.PostQuery{Offset: 4, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(posts) != 1 {
		t.Errorf("expected last page of 1 of 5, got %d of %d", len(posts), total)
	}

	posts, _, _ = svc.List(context.Background(), usecases.PostQuery{Offset: 10})
	if len(posts) != 0 {
		t.Errorf("expected empty page, got %d", len(posts))
	}
}

func TestCommunityService_Highlights(t *testing.T) {
	calls := 0
	repo := &mockPostRepo{
		listFn: func(ctx context.Context) ([]domain.Post, error) {
			calls++
			return samplePosts(), nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewCommunityService(repo, &mockCatalog{}, cache)
	ctx := context.Background()

	all, err := svc.Highlights(ctx, domain.PostAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 highlights, got %d", len(all))
	}

	q, _ := svc.Highlights(ctx, domain.PostQuestion)
	if len(q) != 2 {
		t.Errorf("expected 2 question highlights, got %d", len(q))
	}

	_, _ = svc.Highlights(ctx, domain.PostAll)
	if calls != 2 {
		t.Errorf("expected cached second read, repo called %d times", calls)
	}
}

func TestCommunityService_Get(t *testing.T) {
	repo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Post, error) {
			return &domain.Post{ID: id, Title: "Night tour"}, nil
		},
		listCommentsFn: func(ctx context.Context, postID int) ([]domain.Comment, error) {
			return []domain.Comment{{ID: "c1", PostID: postID, Content: "Great info!"}}, nil
		},
		likedFn: func(ctx context.Context, postID int, viewerID string) (bool, error) {
			return viewerID == "viewer-1", nil
		},
	}
	catalog := &mockCatalog{products: map[int][]domain.RelatedProduct{
		1: {{ID: "hanbokA"}, {ID: "studio"}},
	}}
	svc := usecases.NewCommunityService(repo, catalog, nil)

	detail, err := svc.Get(context.Background(), 1, "viewer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Liked {
		t.Error("expected liked for viewer-1")
	}
	if len(detail.Thread) != 1 || len(detail.Products) != 2 {
		t.Errorf("unexpected detail %+v", detail)
	}
}

func TestCommunityService_Get_NotFound(t *testing.T) {
	svc := usecases.NewCommunityService(&mockPostRepo{}, &mockCatalog{}, nil)

	if _, err := svc.Get(context.Background(), 42, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCommunityService_Create(t *testing.T) {
	var created *domain.Post
	repo := &mockPostRepo{
		createFn: func(ctx context.Context, post *domain.Post) error {
			post.ID = 8
			created = post
			return nil
		},
	}
	svc := usecases.NewCommunityService(repo, &mockCatalog{}, nil)

	post, err := svc.Create(context.Background(), usecases.NewPost{
		Category:  domain.PostTravelPlan,
		Title:     "  Busan in 3 days ",
		Content:   "Any tips?",
		Author:    "Mina",
		Anonymous: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 8 || created == nil {
		t.Fatal("repo was not called")
	}
	if post.Title != "Busan in 3 days" {
		t.Errorf("expected trimmed title, got %q", post.Title)
	}
	if post.Author != "Anonymous" {
		t.Errorf("anonymous post should hide the author, got %q", post.Author)
	}
}

func TestCommunityService_Create_Invalid(t *testing.T) {
	svc := usecases.NewCommunityService(&mockPostRepo{}, &mockCatalog{}, nil)
	ctx := context.Background()

	cases := []usecases.NewPost{
		{Category: domain.PostAll, Title: "t", Content: "c"},
		{Category: domain.PostTalk, Title: " ", Content: "c"},
		{Category: domain.PostTalk, Title: "t", Content: ""},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrInvalidPost) {
			t.Errorf("%+v: expected ErrInvalidPost, got %v", in, err)
		}
	}
}

func TestCommunityService_AddComment(t *testing.T) {
	post := &domain.Post{ID: 3, Category: domain.PostTalk, Comments: 1}
	var added *domain.Comment
	repo := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id int) (*domain.Post, error) { return post, nil },
		addCommentFn: func(ctx context.Context, c *domain.Comment) error {
			added = c
			return nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewCommunityService(repo, &mockCatalog{}, cache)

	c, err := svc.AddComment(context.Background(), 3, "", "Thanks for sharing!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Author != "Anonymous" || c.ID == "" {
		t.Errorf("unexpected comment %+v", c)
	}
	if added == nil || added.PostID != 3 || added.Content != "Thanks for sharing!" {
		t.Errorf("unexpected stored comment %+v", added)
	}
	if len(cache.deletes) == 0 {
		t.Error("expected highlights cache invalidation")
	}

	if _, err := svc.AddComment(context.Background(), 3, "x", "   "); !errors.Is(err, domain.ErrInvalidPost) {
		t.Errorf("expected ErrInvalidPost, got %v", err)
	}
}

func TestCommunityService_ToggleLike(t *testing.T) {
	likes := 5
	liked := false
	repo := &mockPostRepo{
		toggleLikeFn: func(ctx context.Context, postID int, viewerID string) (bool, error) {
			liked = !liked
			if liked {
				likes++
			} else {
				likes--
			}
			return liked, nil
		},
		getByIDFn: func(ctx context.Context, id int) (*domain.Post, error) {
			return &domain.Post{ID: id, Category: domain.PostTalk, Likes: likes}, nil
		},
	}
	svc := usecases.NewCommunityService(repo, &mockCatalog{}, nil)

	st, err := svc.ToggleLike(context.Background(), 3, "viewer-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Liked || st.Likes != 6 {
		t.Errorf("expected liked with 6, got %+v", st)
	}

	st, _ = svc.ToggleLike(context.Background(), 3, "viewer-1")
	if st.Liked || st.Likes != 5 {
		t.Errorf("expected unliked with 5, got %+v", st)
	}

	if _, err := svc.ToggleLike(context.Background(), 3, ""); !errors.Is(err, domain.ErrInvalidPost) {
		t.Errorf("expected ErrInvalidPost, got %v", err)
	}
}

func TestCommunityService_ConcurrentCommentsKeepLikes(t *testing.T) {
	repo := memory.NewPostRepo()
	svc := usecases.NewCommunityService(repo, memory.NewProductCatalog(), nil)
	ctx := context.Background()
	before, err := svc.Get(ctx, 1, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	const n = 300
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.AddComment(ctx, 1, "", "see you there"); err != nil {
				t.Errorf("add comment: %v", err)
			}
		}()
		go func(i int) {
			defer wg.Done()
			if _, err := svc.ToggleLike(ctx, 1, fmt.Sprintf("viewer-%d", i)); err != nil {
				t.Errorf("toggle like: %v", err)
			}
		}(i)
	}
	wg.Wait()

	after, err := svc.Get(ctx, 1, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Post.Comments != before.Post.Comments+n {
		t.Errorf("comments = %d, want %d", after.Post.Comments, before.Post.Comments+n)
	}
	if after.Post.Likes != before.Post.Likes+n {
		t.Errorf("likes = %d, want %d", after.Post.Likes, before.Post.Likes+n)
	}
}

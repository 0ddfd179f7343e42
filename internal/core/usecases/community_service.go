package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/ports"
	"github.com/samirrijal/tripmap/internal/pkg/metrics"
	"github.com/samirrijal/tripmap/internal/pkg/telemetry"
)

const (
	maxHighlights    = 5
	highlightsTTL    = 60
	anonymousAuthor  = "Anonymous"
	maxTitleLength   = 200
	maxContentLength = 10000
)

// PostQuery selects posts for the forum list.
type PostQuery struct {
	Category domain.PostCategory
	Search   string
	Sort     domain.PostSort
	Offset   int
	Limit    int
}

// NewPost is the write-form payload.
type NewPost struct {
	Category  domain.PostCategory `json:"category"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Author    string              `json:"author"`
	Anonymous bool                `json:"anonymous"`
}

// LikeState is a post's like status for one viewer.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// CommunityService handles the forum.
type CommunityService struct {
	posts    ports.PostRepository
	products ports.ProductCatalog
	cache    ports.CacheService
	now      func() time.Time
}

// NewCommunityService creates a new CommunityService. cache may be nil.
func NewCommunityService(posts ports.PostRepository, products ports.ProductCatalog, cache ports.CacheService) *CommunityService {
	return &CommunityService{posts: posts, products: products, cache: cache, now: time.Now}
}

// List returns one page of posts matching q and the total match count.
func (s *CommunityService) List(ctx context.Context, q PostQuery) ([]domain.Post, int, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanCommunityQuery)
	defer span.End()

	if q.Limit <= 0 || q.Limit > 50 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Category == "" {
		q.Category = domain.PostAll
	}
	if q.Category != domain.PostAll && !q.Category.Valid() {
		return nil, 0, fmt.Errorf("%w: category %q", domain.ErrInvalidPost, q.Category)
	}

	all, err := s.posts.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]domain.Post, 0, len(all))
	for _, p := range all {
		if q.Category != domain.PostAll && p.Category != q.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		matched = append(matched, p)
	}

	sortPosts(matched, q.Sort)

	total := len(matched)
	if q.Offset >= total {
		return []domain.Post{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	return matched[q.Offset:end], total, nil
}

func sortPosts(posts []domain.Post, by domain.PostSort) {
	sort.SliceStable(posts, func(i, j int) bool {
		switch by {
		case domain.SortPopular:
			return posts[i].Likes > posts[j].Likes
		case domain.SortComments:
			return posts[i].Comments > posts[j].Comments
		default:
			return posts[i].Date.After(posts[j].Date)
		}
	})
}

// Highlights returns up to five highlighted posts in category.
func (s *CommunityService) Highlights(ctx context.Context, category domain.PostCategory) ([]domain.Post, error) {
	if category == "" {
		category = domain.PostAll
	}
	if category != domain.PostAll && !category.Valid() {
		return nil, fmt.Errorf("%w: category %q", domain.ErrInvalidPost, category)
	}

	cacheKey := "posts:highlights:" + string(category)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var posts []domain.Post
			if err := json.Unmarshal(data, &posts); err == nil {
				metrics.CacheHits.WithLabelValues("highlights").Inc()
				return posts, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("highlights").Inc()
	}

	all, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Post, 0, maxHighlights)
	for _, p := range all {
		if !p.IsHighlight {
			continue
		}
		if category != domain.PostAll && p.Category != category {
			continue
		}
		out = append(out, p)
		if len(out) == maxHighlights {
			break
		}
	}

	if s.cache != nil {
		if data, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, highlightsTTL)
		}
	}
	return out, nil
}

// Get returns a post with its comments and related products.
func (s *CommunityService) Get(ctx context.Context, id int, viewerID string) (*domain.PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	thread, err := s.posts.ListComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	products, err := s.products.RelatedToPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}

	liked := false
	if viewerID != "" {
		if liked, err = s.posts.Liked(ctx, id, viewerID); err != nil {
			return nil, err
		}
	}

	if thread == nil {
		thread = []domain.Comment{}
	}
	if products == nil {
		products = []domain.RelatedProduct{}
	}
	return &domain.PostDetail{Post: *post, Liked: liked, Thread: thread, Products: products}, nil
}

// Create publishes a new post.
func (s *CommunityService) Create(ctx context.Context, in NewPost) (*domain.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	switch {
	case !in.Category.Valid():
		return nil, fmt.Errorf("%w: category %q", domain.ErrInvalidPost, in.Category)
	case title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidPost)
	case len(title) > maxTitleLength:
		return nil, fmt.Errorf("%w: title longer than %d bytes", domain.ErrInvalidPost, maxTitleLength)
	case content == "":
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidPost)
	case len(content) > maxContentLength:
		return nil, fmt.Errorf("%w: content longer than %d bytes", domain.ErrInvalidPost, maxContentLength)
	}

	author := strings.TrimSpace(in.Author)
	if in.Anonymous || author == "" {
		author = anonymousAuthor
	}

	post := &domain.Post{
		Category:  in.Category,
		Title:     title,
		Content:   content,
		Author:    author,
		Anonymous: in.Anonymous,
		Date:      s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// AddComment appends a comment to a post. The repository bumps the
// comment count atomically with the append.
func (s *CommunityService) AddComment(ctx context.Context, postID int, author, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", domain.ErrInvalidPost)
	}
	if len(content) > maxContentLength {
		return nil, fmt.Errorf("%w: comment longer than %d bytes", domain.ErrInvalidPost, maxContentLength)
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = anonymousAuthor
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.posts.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.invalidateHighlights(ctx, post.Category)
	return c, nil
}

// ToggleLike flips the viewer's like on a post.
func (s *CommunityService) ToggleLike(ctx context.Context, postID int, viewerID string) (*LikeState, error) {
	if strings.TrimSpace(viewerID) == "" {
		return nil, fmt.Errorf("%w: viewer is required", domain.ErrInvalidPost)
	}
	liked, err := s.posts.ToggleLike(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.invalidateHighlights(ctx, post.Category)
	return &LikeState{Liked: liked, Likes: post.Likes}, nil
}

func (s *CommunityService) invalidateHighlights(ctx context.Context, category domain.PostCategory) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, "posts:highlights:"+string(domain.PostAll))
	_ = s.cache.Delete(ctx, "posts:highlights:"+string(category))
}

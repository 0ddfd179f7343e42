package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samirrijal/tripmap/internal/core/domain"
)

// PostRepo is an in-memory forum seeded with sample posts.
type PostRepo struct {
	mu       sync.RWMutex
	posts    map[int]domain.Post
	comments map[int][]domain.Comment
	likes    map[int]map[string]bool
	nextID   int
}

type seedPost struct {
	id        int
	category  domain.PostCategory
	title     string
	author    string
	date      string
	likes     int
	comments  int
	highlight bool
}

var seedPosts = []seedPost{
	{1, domain.PostQuestion, "Gyeongbokgung Palace Night Tour", "Jon Doe", "2025-09-05", 0, 2, true},
	{2, domain.PostQuestion, "Hello, the list of businesses closed for the 2025 Mid-Autumn Festival.", "Guest User", "2025-08-22", 10, 6, true},
	{3, domain.PostTalk, "Charter transfer service", "Anonymous", "2025-08-20", 5, 1, false},
	{4, domain.PostQuestion, "Exchange money", "Anonymous", "2025-08-17", 6, 1, false},
	{5, domain.PostQuestion, "Urgent!! There are a lot of scam album stores stealing photos", "Guest User", "2025-08-13", 8, 0, true},
	{6, domain.PostTalk, "Best Korean BBQ restaurants in Gangnam", "Travel Expert", "2025-08-10", 15, 8, true},
	{7, domain.PostTravelPlan, "Looking for travel buddy for Jeju Island", "Solo Traveler", "2025-08-08", 3, 12, true},
}

// NewPostRepo returns a repository holding the sample posts.
func NewPostRepo() *PostRepo {
	r := &PostRepo{
		posts:    make(map[int]domain.Post),
		comments: make(map[int][]domain.Comment),
		likes:    make(map[int]map[string]bool),
	}
	now := time.Now()
	for _, s := range seedPosts {
		date, _ := time.Parse(time.DateOnly, s.date)
		r.posts[s.id] = domain.Post{
			ID:          s.id,
			Category:    s.category,
			Title:       s.title,
			Content:     sampleContent(s.id, s.title),
			Author:      s.author,
			Anonymous:   s.id == 2,
			Date:        date,
			Likes:       s.likes,
			Comments:    s.comments,
			IsHighlight: s.highlight,
		}
		r.comments[s.id] = []domain.Comment{
			{ID: fmt.Sprintf("seed-%d-1", s.id), PostID: s.id, Author: "TravelerA", Content: fmt.Sprintf("Great info on post %d!", s.id), Likes: 1, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: fmt.Sprintf("seed-%d-2", s.id), PostID: s.id, Author: "Anonymous", Content: "Thanks for sharing!", CreatedAt: now.Add(-1 * time.Hour)},
		}
		if s.id >= r.nextID {
			r.nextID = s.id + 1
		}
	}
	return r
}

func sampleContent(id int, title string) string {
	return strings.Join([]string{
		fmt.Sprintf("Sample content for post %d. This is a placeholder paragraph describing details about %q and useful information for travelers.", id, title),
		"Feel free to replace this with real content later. Comments below are also sample data.",
	}, "\n\n")
}

// List returns every post ordered by id.
func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

// Create assigns the next id to post and stores it.
func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepo) ListComments(ctx context.Context, postID int) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.posts[postID]; !ok {
		return nil, fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}
	return append([]domain.Comment{}, r.comments[postID]...), nil
}

func (r *PostRepo) AddComment(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[c.PostID]
	if !ok {
		return fmt.Errorf("post %d: %w", c.PostID, domain.ErrNotFound)
	}
	r.comments[c.PostID] = append(r.comments[c.PostID], *c)
	p.Comments++
	r.posts[c.PostID] = p
	return nil
}

func (r *PostRepo) ToggleLike(ctx context.Context, postID int, viewerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}
	viewers := r.likes[postID]
	if viewers == nil {
		viewers = make(map[string]bool)
		r.likes[postID] = viewers
	}
	liked := !viewers[viewerID]
	if liked {
		viewers[viewerID] = true
		p.Likes++
	} else {
		delete(viewers, viewerID)
		p.Likes--
	}
	r.posts[postID] = p
	return liked, nil
}

func (r *PostRepo) Liked(ctx context.Context, postID int, viewerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.posts[postID]; !ok {
		return false, fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}
	return r.likes[postID][viewerID], nil
}

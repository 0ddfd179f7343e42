package ports

import (
	"context"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/mapview"
)

// SessionStore persists map session state. Save replaces the whole value.
type SessionStore interface {
	Load(ctx context.Context, id string) (*mapview.State, error)
	Save(ctx context.Context, id string, state *mapview.State) error
	Delete(ctx context.Context, id string) error
}

// PostRepository stores community posts and their comments.
type PostRepository interface {
	List(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id int) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	ListComments(ctx context.Context, postID int) ([]domain.Comment, error)
	// AddComment appends c and increments the post's comment count in one step.
	AddComment(ctx context.Context, c *domain.Comment) error
	// ToggleLike flips viewerID's like on a post and adjusts its count.
	ToggleLike(ctx context.Context, postID int, viewerID string) (liked bool, err error)
	Liked(ctx context.Context, postID int, viewerID string) (bool, error)
}

// ProductCatalog resolves products linked to posts.
type ProductCatalog interface {
	RelatedToPost(ctx context.Context, postID int) ([]domain.RelatedProduct, error)
}

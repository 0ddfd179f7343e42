package domain

import "time"

// PostCategory is a forum board.
type PostCategory string

const (
	PostAll        PostCategory = "ALL"
	PostQuestion   PostCategory = "QUESTION"
	PostTalk       PostCategory = "TALK"
	PostTravelPlan PostCategory = "MY TRAVEL PLAN"
)

// Valid reports whether c is a board a post can belong to.
func (c PostCategory) Valid() bool {
	switch c {
	case PostQuestion, PostTalk, PostTravelPlan:
		return true
	}
	return false
}

// Description returns the board banner text.
func (c PostCategory) Description() string {
	switch c {
	case PostQuestion:
		return "Share your questions about traveling in Korea! For inquiries about Creatrip products, please email help@creatrip.com."
	case PostTalk:
		return "Share your free-spirited stories about traveling in Korea. You might even find a friend to travel with!"
	case PostTravelPlan:
		return "Are you having trouble planning your trip to Korea? Share your plans and get advice!"
	}
	return ""
}

// PostSort is a list ordering.
type PostSort string

const (
	SortLatest   PostSort = "latest"
	SortPopular  PostSort = "popular"
	SortComments PostSort = "comments"
)

// Post is a community forum post.
type Post struct {
	ID          int          `json:"id"`
	Category    PostCategory `json:"category"`
	Title       string       `json:"title"`
	Content     string       `json:"content,omitempty"`
	Author      string       `json:"author"`
	Anonymous   bool         `json:"anonymous"`
	Date        time.Time    `json:"date"`
	Likes       int          `json:"likes"`
	Comments    int          `json:"comments"`
	IsHighlight bool         `json:"is_highlight"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    int       `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// RelatedProduct is a bookable product linked to posts.
type RelatedProduct struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Location      string   `json:"location"`
	Title         string   `json:"title"`
	PriceUSD      *float64 `json:"price_usd,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewSnippet string   `json:"review_snippet,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Href          string   `json:"href,omitempty"`
}

// PostDetail is a post with its thread and linked products.
type PostDetail struct {
	Post     Post             `json:"post"`
	Liked    bool             `json:"liked"`
	Thread   []Comment        `json:"thread"`
	Products []RelatedProduct `json:"related_products"`
}

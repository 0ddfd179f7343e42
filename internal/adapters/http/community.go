package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/tripmap/internal/core/domain"
	"github.com/samirrijal/tripmap/internal/core/usecases"
)

// ViewerHeader identifies the anonymous viewer for likes.
const ViewerHeader = "X-Viewer-ID"

func postCategory(c *fiber.Ctx) domain.PostCategory {
	return domain.PostCategory(strings.ToUpper(strings.TrimSpace(c.Query("category"))))
}

// ListPostsHandler returns one page of forum posts.
func ListPostsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := usecases.PostQuery{
			Category: postCategory(c),
			Search:   c.Query("q"),
			Sort:     domain.PostSort(c.Query("sort", string(domain.SortLatest))),
			Offset:   c.QueryInt("offset", 0),
			Limit:    c.QueryInt("limit", 20),
		}
		if len(q.Search) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}
		switch q.Sort {
		case domain.SortLatest, domain.SortPopular, domain.SortComments:
		default:
			return errBadRequest(c, "sort must be latest, popular or comments")
		}

		posts, total, err := deps.Community.List(c.UserContext(), q)
		if err != nil {
			return errFromDomain(c, err)
		}

		offset, limit := q.Offset, q.Limit
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 50 {
			limit = 20
		}
		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: posts, Pagination: pg})
	}
}

// HighlightsHandler returns the highlighted posts of a board.
func HighlightsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat := postCategory(c)
		posts, err := deps.Community.Highlights(c.UserContext(), cat)
		if err != nil {
			return errFromDomain(c, err)
		}
		resp := fiber.Map{"data": posts}
		if cat.Valid() {
			resp["description"] = cat.Description()
		}
		return c.JSON(resp)
	}
}

// GetPostHandler returns a post with its thread and related products.
func GetPostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "post id must be a positive integer")
		}
		detail, err := deps.Community.Get(c.UserContext(), id, c.Get(ViewerHeader))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(detail)
	}
}

// CreatePostHandler publishes a post.
func CreatePostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in usecases.NewPost
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		in.Category = domain.PostCategory(strings.ToUpper(strings.TrimSpace(string(in.Category))))

		post, err := deps.Community.Create(c.UserContext(), in)
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Location("/v1/posts/" + strconv.Itoa(post.ID))
		return c.Status(fiber.StatusCreated).JSON(post)
	}
}

type commentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// AddCommentHandler appends a comment to a post.
func AddCommentHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "post id must be a positive integer")
		}
		var req commentRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		comment, err := deps.Community.AddComment(c.UserContext(), id, req.Author, req.Content)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	}
}

// ToggleLikeHandler flips the viewer's like on a post.
func ToggleLikeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return errBadRequest(c, "post id must be a positive integer")
		}
		state, err := deps.Community.ToggleLike(c.UserContext(), id, c.Get(ViewerHeader))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(state)
	}
}

// ListSearchHistoryHandler returns recent searches, newest first.
func ListSearchHistoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := deps.History.List(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(fiber.Map{"queries": h})
	}
}

type historyRequest struct {
	Query string `json:"query"`
}

// RecordSearchHandler moves a query to the front of the history.
func RecordSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req historyRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		h, err := deps.History.Record(c.UserContext(), req.Query)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(fiber.Map{"queries": h})
	}
}

// ClearSearchHistoryHandler empties the history.
func ClearSearchHistoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.History.Clear(c.UserContext()); err != nil {
			return errFromDomain(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

package server

import (
	"context"

	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// feedPage writes one page of a feed. The page query parameter defaults to 1.
func (s *Server) feedPage(c *fiber.Ctx, load func(ctx context.Context, page int) ([]*models.Post, error)) error {
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		return respond(c, err)
	}
	posts, err := load(c.UserContext(), page)
	if err != nil {
		return respond(c, err)
	}
	out, err := newPostSummaries(posts)
	if err != nil {
		return respond(c, models.NewInternalError(err))
	}
	return c.JSON(out)
}

// RecentFeed handles GET /api/v1/posts/recent
// @Summary Recent published posts
// @Description Newest published posts first, optionally filtered by a space-separated interest list.
// @Tags posts
// @Produce json
// @Param page query int false "1-indexed page"
// @Param interests query string false "space-separated interest names"
// @Success 200 {array} PostSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/recent [get]
func (s *Server) RecentFeed(c *fiber.Ctx) error {
	interests := service.ParseInterests(c.Query("interests"))
	return s.feedPage(c, func(ctx context.Context, page int) ([]*models.Post, error) {
		return s.feedService.Recent(ctx, page, interests)
	})
}

// MediaFeed handles GET /api/v1/posts/media
// @Summary Recent published posts with a binary payload
// @Tags posts
// @Produce json
// @Param page query int false "1-indexed page"
// @Success 200 {array} PostSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/media [get]
func (s *Server) MediaFeed(c *fiber.Ctx) error {
	return s.feedPage(c, s.feedService.Media)
}

// AllFeed handles GET /api/v1/posts/all
// @Summary Every post including drafts
// @Tags posts
// @Produce json
// @Security BasicAuth
// @Param page query int false "1-indexed page"
// @Success 200 {array} PostSummary
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/all [get]
func (s *Server) AllFeed(c *fiber.Ctx) error {
	return s.feedPage(c, s.feedService.All)
}

// GetPost handles GET /api/v1/posts/:id
// @Summary Get a published post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		// Anything that is not a post id names no post.
		return respond(c, models.NewNotFoundError("post", c.Params("id")))
	}

	post, err := s.feedService.GetVisiblePost(c.UserContext(), uint(id))
	if err != nil {
		return respond(c, err)
	}
	out, err := newPostDetail(post)
	if err != nil {
		return respond(c, models.NewInternalError(err))
	}
	return c.JSON(out)
}

// CreatePost handles POST /api/v1/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body service.CreatePostInput true "Post"
// @Success 200 {object} CreatedPostResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), caller(c), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(CreatedPostResponse{ID: post.ID})
}

// CreateFollowup handles POST /api/v1/posts/:id/followup
// @Summary Create a follow-up to a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Prior post ID"
// @Param request body service.CreatePostInput true "Post"
// @Success 200 {object} CreatedPostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/followup [post]
func (s *Server) CreateFollowup(c *fiber.Ctx) error {
	priorID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.CreatePostInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}

	post, err := s.postService.CreateFollowup(c.UserContext(), caller(c), priorID, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(CreatedPostResponse{ID: post.ID})
}

// UpdatePost handles PATCH /api/v1/posts/:id
// @Summary Update a post
// @Description Absent fields are left untouched. interests replaces the whole set; [] clears it.
// @Tags posts
// @Accept json
// @Security BasicAuth
// @Param id path int true "Post ID"
// @Param request body service.UpdatePostInput true "Changes"
// @Success 201
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [patch]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}

	if err := s.postService.Update(c.UserContext(), id, req); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

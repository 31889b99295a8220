package server

import (
	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePublisher handles PUT /api/v1/publisher
// @Summary Create a publisher
// @Description Full admins only. The generated password is returned once.
// @Tags publishers
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body service.CreatePublisherInput true "Publisher"
// @Success 200 {object} CreatedPublisherResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /publisher [put]
func (s *Server) CreatePublisher(c *fiber.Ctx) error {
	var req service.CreatePublisherInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}

	created, err := s.publisherService.Create(c.UserContext(), caller(c), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(CreatedPublisherResponse{
		Name:     created.Publisher.Name,
		Email:    created.Publisher.Email,
		Password: created.Password,
	})
}

// GetPublisher handles GET /api/v1/publisher/:id
// @Summary Get a publisher
// @Tags publishers
// @Produce json
// @Security BasicAuth
// @Param id path int true "Publisher ID"
// @Success 200 {object} PublisherResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /publisher/{id} [get]
func (s *Server) GetPublisher(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	publisher, err := s.publisherService.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	out, err := newPublisherResponse(publisher)
	if err != nil {
		return respond(c, models.NewInternalError(err))
	}
	return c.JSON(out)
}

// UpdateOwnPublisher handles PATCH /api/v1/publisher
// @Summary Change the caller's email or password
// @Tags publishers
// @Accept json
// @Security BasicAuth
// @Param request body service.UpdatePublisherInput true "Changes"
// @Success 201
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /publisher [patch]
func (s *Server) UpdateOwnPublisher(c *fiber.Ctx) error {
	var req service.UpdatePublisherInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}
	if err := s.publisherService.UpdateSelf(c.UserContext(), caller(c), req); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

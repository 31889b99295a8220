package server

import (
	"pressroom/internal/models"
	"pressroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListInterests handles GET /api/v1/interests
// @Summary List interests
// @Tags interests
// @Produce json
// @Success 200 {array} InterestResponse
// @Router /interests [get]
func (s *Server) ListInterests(c *fiber.Ctx) error {
	interests, err := s.interestService.List(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	out, err := newInterestResponses(interests)
	if err != nil {
		return respond(c, models.NewInternalError(err))
	}
	return c.JSON(out)
}

// CreateInterest handles PUT /api/v1/interests
// @Summary Create an interest
// @Tags interests
// @Accept json
// @Security BasicAuth
// @Param request body service.CreateInterestInput true "Interest"
// @Success 201
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /interests [put]
func (s *Server) CreateInterest(c *fiber.Ctx) error {
	var req service.CreateInterestInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}
	if err := s.interestService.Create(c.UserContext(), req); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UpdateInterest handles PATCH /api/v1/interests/:name
// @Summary Change an interest description
// @Tags interests
// @Accept json
// @Security BasicAuth
// @Param name path string true "Interest name"
// @Param request body service.UpdateInterestInput true "Description"
// @Success 201
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /interests/{name} [patch]
func (s *Server) UpdateInterest(c *fiber.Ctx) error {
	var req service.UpdateInterestInput
	if err := decodeBody(c, &req); err != nil {
		return respond(c, err)
	}
	if err := s.interestService.Update(c.UserContext(), nameParam(c, "name"), req); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// DeleteInterest handles DELETE /api/v1/interests/:name
// @Summary Delete an interest
// @Description Removes the interest from every post. Unknown names succeed.
// @Tags interests
// @Security BasicAuth
// @Param name path string true "Interest name"
// @Success 201
// @Router /interests/{name} [delete]
func (s *Server) DeleteInterest(c *fiber.Ctx) error {
	if err := s.interestService.Delete(c.UserContext(), nameParam(c, "name")); err != nil {
		return respond(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

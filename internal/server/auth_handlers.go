package server

import (
	"github.com/gofiber/fiber/v2"
)

// IssueToken handles POST /api/v1/tokens
// @Summary Issue an access token
// @Description Exchange password credentials for a signed token. Token credentials cannot mint new tokens.
// @Tags auth
// @Produce json
// @Security BasicAuth
// @Success 200 {object} TokenResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /tokens [post]
func (s *Server) IssueToken(c *fiber.Ctx) error {
	issued, err := s.authService.IssueToken(caller(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(TokenResponse{Token: issued.Token, Expiration: issued.Expiration})
}

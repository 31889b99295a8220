// Package middleware provides logging, authentication helpers, rate limiting,
// tracing and metrics middleware for the HTTP server.
package middleware

import (
	"context"
	"encoding/base64"
	"strings"

	"pressroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	authLocal        = "auth"
	publisherIDLocal = "publisherID"

	// BasicChallenge is sent with every 401 so clients know to retry with credentials.
	BasicChallenge = `Basic realm="Authentication Required"`
)

// BasicCredentials is the decoded pair from an Authorization: Basic header.
// Identifier is an email address or a token; Secret is a password or empty.
type BasicCredentials struct {
	Identifier string
	Secret     string
}

// ParseBasicAuth decodes an Authorization header value. ok is false when the
// header is absent, uses another scheme or is not valid base64 "id:secret".
func ParseBasicAuth(header string) (BasicCredentials, bool) {
	const prefix = "basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return BasicCredentials{}, false
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return BasicCredentials{}, false
	}

	id, secret, found := strings.Cut(string(raw), ":")
	if !found {
		return BasicCredentials{}, false
	}
	return BasicCredentials{Identifier: id, Secret: secret}, true
}

// Authenticator resolves Basic credentials into an authenticated caller.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, secret string) (*models.AuthContext, error)
}

// SetAuth stores the authenticated caller on the request.
func SetAuth(c *fiber.Ctx, auth *models.AuthContext) {
	c.Locals(authLocal, auth)
	if id := auth.PublisherID(); id != nil {
		c.Locals(publisherIDLocal, *id)
		ctx := context.WithValue(c.UserContext(), PublisherIDKey, *id)
		c.SetUserContext(ctx)
	}
}

// AuthFrom returns the caller stored by SetAuth, or nil for anonymous requests.
func AuthFrom(c *fiber.Ctx) *models.AuthContext {
	auth, _ := c.Locals(authLocal).(*models.AuthContext)
	return auth
}

// Unauthorized writes a 401 with the Basic challenge header.
func Unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, BasicChallenge)
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("Authentication required"))
}

// resolve authenticates the request if it carries credentials. A nil result
// with a nil error means no usable credentials were sent.
func resolve(c *fiber.Ctx, authn Authenticator) (*models.AuthContext, error) {
	creds, ok := ParseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return nil, nil
	}
	return authn.Authenticate(c.UserContext(), creds.Identifier, creds.Secret)
}

// AuthRequired rejects requests that do not authenticate with a 401.
func AuthRequired(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, err := resolve(c, authn)
		if err != nil || auth == nil {
			AuthAttempts.WithLabelValues("basic", "rejected").Inc()
			return Unauthorized(c)
		}
		AuthAttempts.WithLabelValues(authMethod(auth), "accepted").Inc()
		SetAuth(c, auth)
		return c.Next()
	}
}

// OptionalAuth lets requests without Basic credentials through anonymously.
// Credentials that are sent must verify; otherwise the request gets a 401.
func OptionalAuth(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, err := resolve(c, authn)
		if err != nil {
			AuthAttempts.WithLabelValues("basic", "rejected").Inc()
			return Unauthorized(c)
		}
		if auth != nil {
			AuthAttempts.WithLabelValues(authMethod(auth), "accepted").Inc()
			SetAuth(c, auth)
		}
		return c.Next()
	}
}

func authMethod(auth *models.AuthContext) string {
	if auth.ViaToken {
		return "token"
	}
	return "password"
}

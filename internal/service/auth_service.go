package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/security"

	"gorm.io/gorm"
)

// AuthService resolves Basic credentials into a caller and mints tokens.
type AuthService struct {
	publishers    repository.PublisherRepository
	tokens        *security.TokenCodec
	adminOverride string
}

// NewAuthService builds an AuthService. An empty adminOverride disables the
// override identity.
func NewAuthService(publishers repository.PublisherRepository, tokens *security.TokenCodec, adminOverride string) *AuthService {
	return &AuthService{publishers: publishers, tokens: tokens, adminOverride: adminOverride}
}

var errBadCredentials = models.NewUnauthorizedError("Invalid credentials")

// Authenticate checks identifier and secret from a Basic header. With an
// empty secret the identifier is a token (or the admin override); otherwise
// it is an email and the secret a password.
func (s *AuthService) Authenticate(ctx context.Context, identifier, secret string) (*models.AuthContext, error) {
	if identifier == "" {
		return nil, errBadCredentials
	}

	if secret == "" {
		if s.adminOverride != "" && subtle.ConstantTimeCompare([]byte(identifier), []byte(s.adminOverride)) == 1 {
			return &models.AuthContext{
				Publisher: &models.Publisher{Name: "admin", FullAdmin: true},
				ViaToken:  true,
			}, nil
		}

		publisherID, err := s.tokens.Verify(identifier)
		if err != nil {
			return nil, errBadCredentials
		}
		publisher, err := s.publishers.GetByID(ctx, publisherID)
		if err != nil {
			return nil, s.lookupFailure(ctx, err)
		}
		return &models.AuthContext{Publisher: publisher, ViaToken: true}, nil
	}

	publisher, err := s.publishers.GetByEmail(ctx, strings.ToLower(identifier))
	if err != nil {
		return nil, s.lookupFailure(ctx, err)
	}
	if !publisher.CheckPassword(secret) {
		return nil, errBadCredentials
	}
	return &models.AuthContext{Publisher: publisher}, nil
}

func (s *AuthService) lookupFailure(ctx context.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errBadCredentials
	}
	middleware.Logger.ErrorContext(ctx, "publisher lookup failed during authentication", slog.String("error", err.Error()))
	return models.NewInternalError(err)
}

// IssuedToken is a freshly minted token and its lifetime in seconds.
type IssuedToken struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

// IssueToken mints a token for a caller that authenticated with a password.
// Anonymous and token-authenticated callers are refused.
func (s *AuthService) IssueToken(auth *models.AuthContext) (*IssuedToken, error) {
	if auth == nil || auth.ViaToken {
		return nil, models.NewForbiddenError("Tokens can only be issued with email and password")
	}
	id := auth.PublisherID()
	if id == nil {
		return nil, models.NewForbiddenError("Tokens can only be issued with email and password")
	}
	token, err := s.tokens.Issue(*id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &IssuedToken{Token: token, Expiration: int(s.tokens.TTL().Seconds())}, nil
}

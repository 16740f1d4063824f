package services

import (
	"context"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken parses a token string and returns the principal it
	// encodes.
	ValidateAccessToken(ctx context.Context, tokenString string) (*domain.Principal, error)
}

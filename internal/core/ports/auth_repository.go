package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// AuthRepository defines the interface for auth account persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateMetadata(ctx context.Context, id string, metadata map[string]string) error
	// Delete removes the account. Used as the compensating action when the
	// profile-row insert of a fresh signup fails.
	Delete(ctx context.Context, id string) error
}

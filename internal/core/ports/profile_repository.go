package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// ProfileRepository defines persistence for jobseeker profile rows. Each
// role has its own table; the row key is the auth account id, which gives
// Upsert its insert-or-overwrite semantics.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.JobseekerProfile) error
	Find(ctx context.Context, role domain.Role, userID string) (*domain.JobseekerProfile, error)
	// FindEmailByPhone resolves the login email of a blue-collar account from
	// its phone number.
	FindEmailByPhone(ctx context.Context, phone string) (string, error)
	DeleteByUser(ctx context.Context, role domain.Role, userID string) error
}

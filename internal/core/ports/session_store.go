package ports

import (
	"context"
	"time"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// SessionStore persists active sessions so sign-out can revoke tokens before
// they expire. Get returns domain.ErrSessionNotFound for unknown or expired
// ids.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// CodeStore keeps short-lived one-time codes (phone sign-in, password
// reset), keyed by purpose and identifier. Verify consumes the code on
// success.
type CodeStore interface {
	Issue(ctx context.Context, purpose, identifier, code string, ttl time.Duration) error
	Verify(ctx context.Context, purpose, identifier, code string) (bool, error)
}

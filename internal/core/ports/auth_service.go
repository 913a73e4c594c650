package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// SignUpInput carries a signup request. Type becomes the account's metadata
// type; Phone is required for blue collar so phone login can resolve it.
type SignUpInput struct {
	Email    string
	Phone    string
	Password string
	Type     string
}

// SignInInput carries a password sign-in. Hint is the role hint from the
// auth page: blue-collar visitors identify by phone, everyone else by email.
type SignInInput struct {
	Identifier string
	Password   string
	Hint       domain.Role
}

// AuthResult is returned on any successful sign-in.
type AuthResult struct {
	Token   string
	Session domain.Session
	User    *domain.User
	// RedirectTo is the role-appropriate landing path the client should
	// navigate to after the session state updates.
	RedirectTo string
}

// AuthService covers every operation of the hosted-auth surface: signup,
// password and one-time-code sign-in, sign-out, session lookup and password
// reset.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, input SignInInput) (*AuthResult, error)
	RequestCode(ctx context.Context, phone string) error
	SignInWithCode(ctx context.Context, phone, code string) (*AuthResult, error)
	SignOut(ctx context.Context, sessionID string) error
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
	SendPasswordReset(ctx context.Context, email string) error
	// SelectRole assigns an account type to a session whose metadata carries
	// none yet, refreshing the stored session snapshot.
	SelectRole(ctx context.Context, sessionID string, role domain.Role) (*AuthResult, error)
}

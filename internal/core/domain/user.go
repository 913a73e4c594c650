package domain

import (
	"errors"
	"time"
)

// Role classifies an authenticated account. It is never stored on its own:
// it is derived from the account's metadata on every read.
type Role string

const (
	RoleBlue    Role = "blue"
	RoleWhite   Role = "white"
	RoleCompany Role = "company"
	// RoleNone marks a session whose metadata carries no recognized type yet,
	// e.g. right after signup before the metadata write has landed. Such a
	// session is authenticated but has no profile path.
	RoleNone Role = "none"
)

// MetadataTypeKey is the metadata field the role is derived from.
const MetadataTypeKey = "type"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid account type")
var ErrSessionNotFound = errors.New("session not found")

// RoleFromMetadata resolves the role tag from account metadata. Anything
// other than the three known types resolves to RoleNone.
func RoleFromMetadata(metadata map[string]string) Role {
	switch Role(metadata[MetadataTypeKey]) {
	case RoleBlue:
		return RoleBlue
	case RoleWhite:
		return RoleWhite
	case RoleCompany:
		return RoleCompany
	default:
		return RoleNone
	}
}

// JobseekerRole reports whether the role walks the profile wizard.
func (r Role) JobseekerRole() bool {
	return r == RoleBlue || r == RoleWhite
}

// LandingPath returns the default authenticated landing page for a role.
// RoleNone lands on the selector page, never on an error state.
func LandingPath(r Role) string {
	switch r {
	case RoleBlue:
		return "/bluecollar"
	case RoleWhite:
		return "/whitecollar"
	case RoleCompany:
		return "/dashboard"
	default:
		return "/home"
	}
}

// User models an account held by the auth backend.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	PasswordHash string            `json:"-"`
	Metadata     map[string]string `json:"metadata"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Role derives the user's role from its metadata.
func (u *User) Role() Role {
	return RoleFromMetadata(u.Metadata)
}

// Session is the authenticated identity handle handed to every other
// component. It is created by the auth service on sign-in and destroyed on
// sign-out or expiry; everything outside the provider reads it only.
type Session struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Metadata  map[string]string `json:"metadata"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Role derives the session's role from its metadata snapshot.
func (s *Session) Role() Role {
	if s == nil {
		return RoleNone
	}
	return RoleFromMetadata(s.Metadata)
}

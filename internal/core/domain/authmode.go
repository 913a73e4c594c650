package domain

import "errors"

// AuthMode is the active sub-form of the authentication view.
type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignup AuthMode = "signup"
	ModeReset  AuthMode = "reset"
)

// IdentifierKind says which identity field the auth form asks for.
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

var ErrInvalidModeChange = errors.New("invalid auth mode change")

// modeChanges defines the allowed toggles: login and signup swap freely,
// reset is only reachable from login and only returns to login.
var modeChanges = map[AuthMode][]AuthMode{
	ModeLogin:  {ModeSignup, ModeReset},
	ModeSignup: {ModeLogin},
	ModeReset:  {ModeLogin},
}

// AuthModeState tracks the auth view: which sub-form is shown and which role
// the visitor arrived for. It is seeded from the URL and mutated only by
// explicit toggles; it is never persisted.
type AuthModeState struct {
	Mode     AuthMode `json:"mode"`
	RoleHint Role     `json:"role_hint"`
}

// NewAuthModeState seeds the state from the query parameters of the auth
// page. Unknown hints fall back to white collar, the original default of the
// form; unknown modes fall back to login.
func NewAuthModeState(hint, mode string) AuthModeState {
	s := AuthModeState{Mode: ModeLogin, RoleHint: RoleWhite}
	switch Role(hint) {
	case RoleBlue, RoleWhite, RoleCompany:
		s.RoleHint = Role(hint)
	}
	switch AuthMode(mode) {
	case ModeSignup, ModeReset:
		s.Mode = AuthMode(mode)
	}
	return s
}

// Toggle switches to the target mode if the change is legal.
func (s *AuthModeState) Toggle(target AuthMode) error {
	for _, allowed := range modeChanges[s.Mode] {
		if allowed == target {
			s.Mode = target
			return nil
		}
	}
	return ErrInvalidModeChange
}

// IdentifierKind returns phone for blue-collar visitors outside signup
// (blue accounts sign in by phone but always sign up with email), email
// everywhere else.
func (s AuthModeState) IdentifierKind() IdentifierKind {
	if s.RoleHint == RoleBlue && s.Mode != ModeSignup {
		return IdentifierPhone
	}
	return IdentifierEmail
}

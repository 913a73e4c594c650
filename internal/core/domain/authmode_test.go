package domain

import "testing"

func TestNewAuthModeState_Defaults(t *testing.T) {
	s := NewAuthModeState("", "")
	if s.Mode != ModeLogin || s.RoleHint != RoleWhite {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	s = NewAuthModeState("martian", "levitate")
	if s.Mode != ModeLogin || s.RoleHint != RoleWhite {
		t.Fatalf("unknown parameters must fall back to defaults: %+v", s)
	}

	s = NewAuthModeState("blue", "signup")
	if s.Mode != ModeSignup || s.RoleHint != RoleBlue {
		t.Fatalf("seed from query ignored: %+v", s)
	}
}

func TestAuthModeState_Toggle(t *testing.T) {
	allowed := []struct{ from, to AuthMode }{
		{ModeLogin, ModeSignup},
		{ModeSignup, ModeLogin},
		{ModeLogin, ModeReset},
		{ModeReset, ModeLogin},
	}
	for _, tc := range allowed {
		s := AuthModeState{Mode: tc.from, RoleHint: RoleWhite}
		if err := s.Toggle(tc.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
		if s.Mode != tc.to {
			t.Errorf("%s -> %s did not switch", tc.from, tc.to)
		}
	}

	forbidden := []struct{ from, to AuthMode }{
		{ModeSignup, ModeReset},
		{ModeReset, ModeSignup},
		{ModeLogin, ModeLogin},
	}
	for _, tc := range forbidden {
		s := AuthModeState{Mode: tc.from, RoleHint: RoleWhite}
		if err := s.Toggle(tc.to); err != ErrInvalidModeChange {
			t.Errorf("%s -> %s should be refused, got %v", tc.from, tc.to, err)
		}
		if s.Mode != tc.from {
			t.Errorf("refused toggle %s -> %s mutated the state", tc.from, tc.to)
		}
	}
}

func TestAuthModeState_IdentifierKind(t *testing.T) {
	cases := []struct {
		hint Role
		mode AuthMode
		want IdentifierKind
	}{
		{RoleBlue, ModeLogin, IdentifierPhone},
		{RoleBlue, ModeReset, IdentifierPhone},
		// Blue accounts always sign up with an email.
		{RoleBlue, ModeSignup, IdentifierEmail},
		{RoleWhite, ModeLogin, IdentifierEmail},
		{RoleCompany, ModeLogin, IdentifierEmail},
	}
	for _, tc := range cases {
		s := AuthModeState{Mode: tc.mode, RoleHint: tc.hint}
		if got := s.IdentifierKind(); got != tc.want {
			t.Errorf("hint=%s mode=%s: got %s, want %s", tc.hint, tc.mode, got, tc.want)
		}
	}
}

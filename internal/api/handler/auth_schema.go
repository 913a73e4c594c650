package handler

import "github.com/yalajobs/jobboard-api/internal/core/domain"

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" validate:"required,min=8"`
	Type     string `json:"type" validate:"required,oneof=blue white company"`
}

type signInRequest struct {
	// Identifier is an email address, or a phone number when the blue collar
	// form is active.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Hint       string `json:"hint,omitempty"`
}

type otpRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type otpVerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6"`
}

type selectRoleRequest struct {
	Type string `json:"type" validate:"required,oneof=blue white company"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	Token      string          `json:"token,omitempty"`
	Session    *domain.Session `json:"session,omitempty"`
	RedirectTo string          `json:"redirect_to,omitempty"`
}

// authViewResponse describes the state the auth page renders with: which
// form is active and what the identifier field asks for.
type authViewResponse struct {
	Mode           string `json:"mode"`
	RoleHint       string `json:"role_hint"`
	IdentifierKind string `json:"identifier_kind"`
}

type messageResponse struct {
	Message string `json:"message"`
}

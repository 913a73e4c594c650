package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/api/middleware"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// View returns the auth page state for a role hint and requested mode.
//
// @Summary      Describe the auth form
// @Tags         auth
// @Produce      json
// @Param        type  query     string  false  "Role hint (blue, white, company)"
// @Param        mode  query     string  false  "Form mode (login, signup, reset)"
// @Success      200   {object}  authViewResponse
// @Router       /auth [get]
func (h *AuthHandler) View(c echo.Context) error {
	state := domain.NewAuthModeState(c.QueryParam("type"), c.QueryParam("mode"))
	return c.JSON(http.StatusOK, authViewResponse{
		Mode:           string(state.Mode),
		RoleHint:       string(state.RoleHint),
		IdentifierKind: string(state.IdentifierKind()),
	})
}

// ToggleMode validates a mode change against the current form mode. The
// reset form is only reachable from login, and only returns to login.
//
// @Summary      Switch the auth form mode
// @Tags         auth
// @Produce      json
// @Param        type  query     string  false  "Role hint (blue, white, company)"
// @Param        from  query     string  true   "Current form mode"
// @Param        to    query     string  true   "Requested form mode"
// @Success      200   {object}  authViewResponse
// @Failure      422   {object}  map[string]string
// @Router       /auth/mode [get]
func (h *AuthHandler) ToggleMode(c echo.Context) error {
	state := domain.NewAuthModeState(c.QueryParam("type"), c.QueryParam("from"))
	if err := state.Toggle(domain.AuthMode(c.QueryParam("to"))); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authViewResponse{
		Mode:           string(state.Mode),
		RoleHint:       string(state.RoleHint),
		IdentifierKind: string(state.IdentifierKind()),
	})
}

// SignUp creates an account with the chosen role type.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Signup details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Type:     req.Type,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "account created, check your email to confirm"})
}

// SignIn authenticates with a password and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SignIn(c.Request().Context(), ports.SignInInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Hint:       domain.Role(req.Hint),
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result)
	return c.JSON(http.StatusOK, sessionResponse{
		Token:      result.Token,
		Session:    &result.Session,
		RedirectTo: result.RedirectTo,
	})
}

// RequestCode sends a one-time sign-in code to a phone number.
//
// @Summary      Request a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Phone number"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/otp [post]
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestCode(c.Request().Context(), req.Phone); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "code sent"})
}

// VerifyCode exchanges a one-time code for a session.
//
// @Summary      Sign in with a one-time code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      otpVerifyRequest  true  "Phone and code"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/otp/verify [post]
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req otpVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SignInWithCode(c.Request().Context(), req.Phone, req.Code)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, result)
	return c.JSON(http.StatusOK, sessionResponse{
		Token:      result.Token,
		Session:    &result.Session,
		RedirectTo: result.RedirectTo,
	})
}

// SignOut revokes the current session. Signing out twice is not an error.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Security     BearerAuth
// @Router       /api/auth/logout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.SignOut(c.Request().Context(), sess.ID); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out"})
}

// CurrentSession returns the authenticated session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/auth/session [get]
func (h *AuthHandler) CurrentSession(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: sess})
}

// SelectRole assigns an account type to a session that has none yet and
// returns the refreshed session with its landing redirect.
//
// @Summary      Select the account role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      selectRoleRequest  true  "Account type"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/auth/role [post]
func (h *AuthHandler) SelectRole(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req selectRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.SelectRole(c.Request().Context(), sess.ID, domain.Role(req.Type))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Session:    &result.Session,
		RedirectTo: result.RedirectTo,
	})
}

// SendPasswordReset mails a reset link. The response does not reveal whether
// the account exists.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/reset [post]
func (h *AuthHandler) SendPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.SendPasswordReset(c.Request().Context(), req.Email); err != nil &&
		err != domain.ErrUserNotFound {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "if the account exists, a reset email was sent"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, result *ports.AuthResult) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

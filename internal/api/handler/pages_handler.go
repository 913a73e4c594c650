package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/api/middleware"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// PagesHandler serves the view descriptors the page routes render with once
// the guard admits the request. Each descriptor names the view and carries
// the session role, so the client shell knows which surface to mount.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

type pageResponse struct {
	View string `json:"view"`
	Role string `json:"role,omitempty"`
	// SignedIn lets public pages adapt their header without a second
	// session round trip.
	SignedIn bool `json:"signed_in"`
}

// Page returns a handler rendering the named view.
func (h *PagesHandler) Page(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := pageResponse{View: view}
		if sess := middleware.SessionFromContext(c); sess != nil {
			resp.SignedIn = true
			if role := sess.Role(); role != domain.RoleNone {
				resp.Role = string(role)
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}

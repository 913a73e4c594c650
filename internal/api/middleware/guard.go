package middleware

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/api/metrics"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// RouteRule declares the guard contract of one page path. Roles is the set
// admitted to render the view; an empty set means the page is public.
type RouteRule struct {
	Path string
	// Roles admitted to the view. Public pages leave it empty.
	Roles []domain.Role
	// Hint is the role hint appended to the auth redirect so the auth view
	// pre-selects the right form.
	Hint domain.Role
}

const (
	// AuthPath is where anonymous visitors of protected pages are sent.
	AuthPath = "/auth"
	// PublicLandingPath catches every unmatched path, session or not.
	PublicLandingPath = "/"
)

// Routes is the full routing surface of the site.
var Routes = []RouteRule{
	{Path: "/"},
	{Path: "/home"},
	{Path: "/auth"},
	{Path: "/whitecollar", Roles: []domain.Role{domain.RoleWhite}, Hint: domain.RoleWhite},
	{Path: "/bluecollar", Roles: []domain.Role{domain.RoleBlue}, Hint: domain.RoleBlue},
	{Path: "/dashboard", Roles: []domain.Role{domain.RoleCompany}, Hint: domain.RoleCompany},
	{Path: "/company-profile", Roles: []domain.Role{domain.RoleCompany}, Hint: domain.RoleCompany},
}

// Public reports whether any session (or none) may render the page.
func (r RouteRule) Public() bool {
	return len(r.Roles) == 0
}

// Admits reports whether the role may render the page.
func (r RouteRule) Admits(role domain.Role) bool {
	if r.Public() {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// RouteTable resolves rules by path and validates the redirect graph at
// startup, so a broken rule set fails the boot instead of looping users.
type RouteTable struct {
	byPath map[string]RouteRule
}

// NewRouteTable builds the table and rejects a rule set whose failure
// redirects could loop: every wrong-role redirect must land on a page that
// admits the same role, and the auth and public landing paths must exist
// and be public.
func NewRouteTable(rules []RouteRule) (*RouteTable, error) {
	t := &RouteTable{byPath: make(map[string]RouteRule, len(rules))}
	for _, rule := range rules {
		t.byPath[rule.Path] = rule
	}

	if rule, ok := t.byPath[AuthPath]; !ok || !rule.Public() {
		return nil, fmt.Errorf("route table: %s must exist and be public", AuthPath)
	}
	if rule, ok := t.byPath[PublicLandingPath]; !ok || !rule.Public() {
		return nil, fmt.Errorf("route table: %s must exist and be public", PublicLandingPath)
	}

	roles := []domain.Role{domain.RoleBlue, domain.RoleWhite, domain.RoleCompany, domain.RoleNone}
	for _, rule := range rules {
		if rule.Public() {
			continue
		}
		for _, role := range roles {
			if rule.Admits(role) {
				continue
			}
			target, ok := t.byPath[domain.LandingPath(role)]
			if !ok {
				return nil, fmt.Errorf("route table: %s redirects role %q to unknown path %s",
					rule.Path, role, domain.LandingPath(role))
			}
			if !target.Admits(role) {
				return nil, fmt.Errorf("route table: redirect loop, %s sends role %q to %s which rejects it",
					rule.Path, role, target.Path)
			}
		}
	}
	return t, nil
}

// Rule returns the declared rule for a path.
func (t *RouteTable) Rule(path string) (RouteRule, bool) {
	rule, ok := t.byPath[path]
	return rule, ok
}

// Guard enforces the rule for the wrapped page route. The decision is a
// pure function of (session, role, path) and has no side effects beyond the
// redirect:
//   - no session      → 303 to the auth page, role hint preserved
//   - role admitted   → render
//   - role rejected   → 303 to the role's landing page (a role of none goes
//     to the selector page, covering the signup metadata race)
func Guard(rule RouteRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFromContext(c)

			if rule.Public() {
				metrics.GuardDecisionsTotal.WithLabelValues("render").Inc()
				return next(c)
			}

			if sess == nil {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_auth").Inc()
				target := AuthPath
				if rule.Hint != "" {
					target += "?type=" + url.QueryEscape(string(rule.Hint))
				}
				return c.Redirect(http.StatusSeeOther, target)
			}

			role := sess.Role()
			if rule.Admits(role) {
				metrics.GuardDecisionsTotal.WithLabelValues("render").Inc()
				return next(c)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("redirect_landing").Inc()
			return c.Redirect(http.StatusSeeOther, domain.LandingPath(role))
		}
	}
}

// RedirectUnmatched is the catch-all handler: every unknown path goes to the
// public landing, session or not.
func RedirectUnmatched(c echo.Context) error {
	metrics.GuardDecisionsTotal.WithLabelValues("redirect_landing").Inc()
	return c.Redirect(http.StatusSeeOther, PublicLandingPath)
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yalajobs/jobboard-api/internal/api/handler"
	"github.com/yalajobs/jobboard-api/internal/api/middleware"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// RouterOptions groups everything the router needs wired in.
type RouterOptions struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string

	Auth     ports.AuthService
	Wizard   ports.WizardService
	Company  ports.CompanyService
	Sessions ports.SessionStore
	Storage  ports.FileStorage

	Logger zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. It fails
// when the page route table is invalid, so a rule set whose redirects could
// loop never reaches traffic.
func NewRouter(opts RouterOptions) (*echo.Echo, error) {
	routeTable, err := middleware.NewRouteTable(middleware.Routes)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(opts.Auth)
	wizardHandler := handler.NewWizardHandler(opts.Wizard)
	companyHandler := handler.NewCompanyHandler(opts.Company)
	storageHandler := handler.NewStorageHandler(opts.Storage, opts.Wizard)
	pagesHandler := handler.NewPagesHandler()

	sessionMW := middleware.Session(opts.JWTSecret, opts.Sessions)
	authMW := middleware.Auth(opts.JWTSecret, opts.Sessions)

	// --- Page routes ---
	// Every page resolves the session first, then runs its guard. The auth
	// page renders the mode state instead of a plain view descriptor.
	pageViews := map[string]echo.HandlerFunc{
		"/":                pagesHandler.Page("landing"),
		"/home":            pagesHandler.Page("home"),
		"/auth":            authHandler.View,
		"/whitecollar":     pagesHandler.Page("whitecollar"),
		"/bluecollar":      pagesHandler.Page("bluecollar"),
		"/dashboard":       pagesHandler.Page("dashboard"),
		"/company-profile": pagesHandler.Page("company-profile"),
	}
	for _, rule := range middleware.Routes {
		view, ok := pageViews[rule.Path]
		if !ok {
			continue
		}
		r, _ := routeTable.Rule(rule.Path)
		e.GET(r.Path, view, sessionMW, middleware.Guard(r))
	}
	e.GET("/auth/mode", authHandler.ToggleMode, sessionMW)
	e.RouteNotFound("/*", middleware.RedirectUnmatched)

	// --- Auth API ---
	authAPI := e.Group("/api/auth")
	authAPI.POST("/signup", authHandler.SignUp)
	authAPI.POST("/login", authHandler.SignIn)
	authAPI.POST("/otp", authHandler.RequestCode)
	authAPI.POST("/otp/verify", authHandler.VerifyCode)
	authAPI.POST("/reset", authHandler.SendPasswordReset)
	authAPI.POST("/logout", authHandler.SignOut, authMW)
	authAPI.POST("/role", authHandler.SelectRole, authMW)
	authAPI.GET("/session", authHandler.CurrentSession, authMW)

	// --- Jobseeker API ---
	jobseekerMW := []echo.MiddlewareFunc{authMW, middleware.RBAC(domain.RoleBlue, domain.RoleWhite)}
	wizardAPI := e.Group("/api/wizard", jobseekerMW...)
	wizardAPI.GET("", wizardHandler.State)
	wizardAPI.POST("/next", wizardHandler.Next)
	wizardAPI.POST("/back", wizardHandler.Back)
	wizardAPI.POST("/reset", wizardHandler.Reset)
	wizardAPI.POST("/edit", wizardHandler.EditList)

	e.POST("/api/storage/resume", storageHandler.UploadResume, jobseekerMW...)

	// --- Company API ---
	companyAPI := e.Group("/api/company", authMW, middleware.RBAC(domain.RoleCompany))
	companyAPI.GET("/profile", companyHandler.Profile)
	companyAPI.PUT("/profile", companyHandler.UpsertProfile)
	companyAPI.GET("/jobs", companyHandler.ListJobs)
	companyAPI.POST("/jobs", companyHandler.PostJob)
	companyAPI.DELETE("/jobs/:id", companyHandler.DeleteJob)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}

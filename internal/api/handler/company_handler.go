package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// CompanyHandler exposes the employer surface: the company profile and its
// job listings.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type companyProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

type jobListingRequest struct {
	Title      string `json:"title" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=blue white"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type jobListResponse struct {
	Jobs []*domain.JobListing `json:"jobs"`
}

// UpsertProfile creates or updates the company profile.
//
// @Summary      Save the company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body      companyProfileRequest  true  "Company profile"
// @Success      200   {object}  domain.CompanyProfile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/company/profile [put]
func (h *CompanyHandler) UpsertProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req companyProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UpsertProfile(c.Request().Context(), sess, ports.CompanyProfileInput{
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Profile returns the company profile of the session user.
//
// @Summary      Company profile
// @Tags         company
// @Produce      json
// @Success      200  {object}  domain.CompanyProfile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/company/profile [get]
func (h *CompanyHandler) Profile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Profile(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// PostJob publishes a new job listing.
//
// @Summary      Post a job
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body      jobListingRequest  true  "Job listing"
// @Success      201   {object}  domain.JobListing
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/company/jobs [post]
func (h *CompanyHandler) PostJob(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req jobListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.PostJob(c.Request().Context(), sess, ports.JobListingInput{
		Title:      req.Title,
		Type:       req.Type,
		Skills:     req.Skills,
		Experience: req.Experience,
		Education:  req.Education,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// ListJobs returns the company's own listings.
//
// @Summary      List posted jobs
// @Tags         company
// @Produce      json
// @Success      200  {object}  jobListResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/company/jobs [get]
func (h *CompanyHandler) ListJobs(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListJobs(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []*domain.JobListing{}
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs})
}

// DeleteJob removes one of the company's listings.
//
// @Summary      Delete a job
// @Tags         company
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/company/jobs/{id} [delete]
func (h *CompanyHandler) DeleteJob(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "job deleted"})
}

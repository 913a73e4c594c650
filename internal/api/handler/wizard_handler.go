package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// WizardHandler exposes the profile wizard to jobseekers. Every endpoint
// operates on the session user's own state.
type WizardHandler struct {
	service ports.WizardService
}

func NewWizardHandler(service ports.WizardService) *WizardHandler {
	return &WizardHandler{service: service}
}

// State returns the wizard state, seeding it from the stored profile when no
// working copy is cached.
//
// @Summary      Wizard state
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/wizard [get]
func (h *WizardHandler) State(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.service.State(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

// Next applies the submitted step fields, validates the step and advances.
//
// @Summary      Advance the wizard
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      wizardStepRequest  true  "Fields of the active step"
// @Success      200   {object}  wizardStateResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/wizard/next [post]
func (h *WizardHandler) Next(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req wizardStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	state, err := h.service.Next(c.Request().Context(), sess, ports.StepInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Location:   req.Location,
		Experience: req.Experience,
		Education:  req.Education,
		Skills:     req.Skills,
		OtherSkill: req.OtherSkill,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

// Back moves one step back without validating or persisting.
//
// @Summary      Step back
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/wizard/back [post]
func (h *WizardHandler) Back(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.service.Back(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

// Reset discards the wizard back to step one with a fresh form.
//
// @Summary      Reset the wizard
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizardStateResponse
// @Failure      401  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/wizard/reset [post]
func (h *WizardHandler) Reset(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	state, err := h.service.Reset(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

// EditList applies one local list edit (add or remove a row, toggle a skill)
// to the cached form without persisting it.
//
// @Summary      Edit a list field
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        body  body      wizardEditRequest  true  "List operation"
// @Success      200   {object}  wizardStateResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/wizard/edit [post]
func (h *WizardHandler) EditList(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req wizardEditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.service.EditList(c.Request().Context(), sess, ports.ListEditInput{
		Op:    req.Op,
		Index: req.Index,
		Skill: req.Skill,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

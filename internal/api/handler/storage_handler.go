package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yalajobs/jobboard-api/internal/api/metrics"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// maxResumeBytes caps resume uploads at 5 MiB.
const maxResumeBytes = 5 << 20

// StorageHandler accepts resume uploads and attaches the stored URL to the
// uploader's wizard form.
type StorageHandler struct {
	storage ports.FileStorage
	wizard  ports.WizardService
}

func NewStorageHandler(storage ports.FileStorage, wizard ports.WizardService) *StorageHandler {
	return &StorageHandler{storage: storage, wizard: wizard}
}

// UploadResume stores a PDF resume under a per-user key and records its URL
// on the wizard form. Re-uploading replaces the previous file.
//
// @Summary      Upload a resume
// @Tags         storage
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "PDF resume, 5 MiB max"
// @Success      200     {object}  wizardStateResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      413     {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/storage/resume [post]
func (h *StorageHandler) UploadResume(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}
	if fileHeader.Size > maxResumeBytes {
		metrics.ResumeUploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "resume exceeds 5 MiB")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		metrics.ResumeUploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "resume must be a PDF")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read resume file")
	}
	defer file.Close()

	// One key per user, so a re-upload replaces the old resume in place.
	key := sess.UserID + ".pdf"
	url, err := h.storage.Upload(c.Request().Context(), string(sess.Role()), key, file, true)
	if err != nil {
		metrics.ResumeUploadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ResumeUploadsTotal.WithLabelValues("ok").Inc()

	state, err := h.wizard.AttachResume(c.Request().Context(), sess, url)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newWizardStateResponse(state))
}

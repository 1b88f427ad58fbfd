package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/opt"
	"github.com/nexphase/nexcareer/pkg/profile"
)

type ProfileHandler struct {
	uc         profile.UseCase
	maxUpload  int64
	resumeLink time.Duration
}

// NewProfileHandler rejects uploads larger than maxUpload bytes and signs
// resume links for linkTTL.
func NewProfileHandler(uc profile.UseCase, maxUpload int64, linkTTL time.Duration) *ProfileHandler {
	return &ProfileHandler{uc: uc, maxUpload: maxUpload, resumeLink: linkTTL}
}

type updateProfileRequest struct {
	Name       opt.Field[*string]              `json:"name" swaggertype:"string"`
	Email      opt.Field[*string]              `json:"email" swaggertype:"string"`
	Phone      opt.Field[*string]              `json:"phone" swaggertype:"string"`
	Summary    opt.Field[*string]              `json:"summary" swaggertype:"string"`
	Skills     opt.Field[[]string]             `json:"skills" swaggertype:"array,string"`
	Education  opt.Field[[]profile.Education]  `json:"education" swaggertype:"array,object"`
	Experience opt.Field[[]profile.Experience] `json:"experience" swaggertype:"array,object"`
}

type profileResponse struct {
	*profile.Profile
	Complete bool `json:"complete"`
}

// @Summary  Get profile
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} profileResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	p, err := h.uc.Get(c.UserContext(), uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if p == nil {
		return presenter.Error(c, http.StatusNotFound, "profile not found")
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{Profile: p, Complete: p.IsComplete()})
}

// @Summary  Update profile
// @Description Creates the profile on first write. Omitted fields are left as they are.
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    input body updateProfileRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} profileResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /profile [patch]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p, err := h.uc.Update(c.UserContext(), profile.UpdateInput{
		UserID:     uid,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Summary:    req.Summary,
		Skills:     req.Skills,
		Education:  req.Education,
		Experience: req.Experience,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{Profile: &p, Complete: p.IsComplete()})
}

// @Summary  Upload and parse a resume
// @Description Extracts text from a PDF, DOCX or plain-text resume, stores the file and merges the parsed data into the profile.
// @Tags     profile
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "resume file"
// @Security BearerAuth
// @Success  200 {object} profile.ParseResumeResult
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  413 {object} presenter.ErrorResponse
// @Router   /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Resume file is required")
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		return presenter.Error(c, http.StatusRequestEntityTooLarge, "resume file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to read uploaded file")
	}

	res, err := h.uc.ParseResume(c.UserContext(), uid, data, fh.Filename)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Temporary download link for the stored resume
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]string
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /profile/resume [get]
func (h *ProfileHandler) ResumeLink(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	link, err := h.uc.ResumeLink(c.UserContext(), uid, h.resumeLink)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"url":       link,
		"expiresAt": time.Now().UTC().Add(h.resumeLink),
	})
}

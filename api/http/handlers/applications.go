package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/application"
	"github.com/nexphase/nexcareer/pkg/opt"
)

type ApplicationHandler struct {
	uc application.UseCase
}

func NewApplicationHandler(uc application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createApplicationRequest struct {
	Company     string             `json:"company"`
	Position    string             `json:"position"`
	Status      application.Status `json:"status"`
	AppliedDate *string            `json:"appliedDate"`
	Notes       *string            `json:"notes"`
	URL         *string            `json:"url"`
}

// Fields left out of the body are not touched; explicit nulls clear them.
type updateApplicationRequest struct {
	Company       opt.Field[string]             `json:"company" swaggertype:"string"`
	Position      opt.Field[string]             `json:"position" swaggertype:"string"`
	Status        opt.Field[application.Status] `json:"status" swaggertype:"string"`
	AppliedDate   opt.Field[*string]            `json:"appliedDate" swaggertype:"string"`
	Notes         opt.Field[*string]            `json:"notes" swaggertype:"string"`
	URL           opt.Field[*string]            `json:"url" swaggertype:"string"`
	FollowedUpAt  opt.Field[*string]            `json:"followedUpAt" swaggertype:"string"`
	InterviewDate opt.Field[*string]            `json:"interviewDate" swaggertype:"string"`
}

type applicationResponse struct {
	application.Application
	NeedsFollowUp bool                 `json:"needsFollowUp"`
	NextStatuses  []application.Status `json:"nextStatuses"`
}

func present(a application.Application) applicationResponse {
	return applicationResponse{
		Application:   a,
		NeedsFollowUp: a.NeedsFollowUp(time.Now().UTC()),
		NextStatuses:  application.NextStatuses(a.Status),
	}
}

func presentAll(list []application.Application) []applicationResponse {
	out := make([]applicationResponse, len(list))
	for i, a := range list {
		out[i] = present(a)
	}
	return out
}

// @Summary  Create application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    input body createApplicationRequest true "application"
// @Security BearerAuth
// @Success  201 {object} applicationResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var req createApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	applied, err := parseDate(req.AppliedDate)
	if err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.uc.Create(c.UserContext(), application.CreateInput{
		UserID:      uid,
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		AppliedDate: applied,
		Notes:       req.Notes,
		URL:         req.URL,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, present(a))
}

// @Summary  List applications
// @Tags     applications
// @Produce  json
// @Param    status query string false "Saved, Applied, Interview, Offer or Rejected"
// @Param    limit  query int    false "page size (default 50, max 200)"
// @Param    offset query int    false "offset"
// @Security BearerAuth
// @Success  200 {array} applicationResponse
// @Router   /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var status *application.Status
	if v := c.Query("status"); v != "" {
		s := application.Status(v)
		if !s.Valid() {
			return presenter.Error(c, http.StatusBadRequest, "Invalid application status")
		}
		status = &s
	}
	list, err := h.uc.List(c.UserContext(), uid, status)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presentAll(page(c, list, 50)))
}

// @Summary  Search applications by company, position or notes
// @Tags     applications
// @Produce  json
// @Param    q query string true "keyword"
// @Security BearerAuth
// @Success  200 {array} applicationResponse
// @Router   /applications/search [get]
func (h *ApplicationHandler) Search(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	list, err := h.uc.Search(c.UserContext(), uid, c.Query("q"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presentAll(page(c, list, 50)))
}

// @Summary  Application statistics
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} application.Stats
// @Router   /applications/stats [get]
func (h *ApplicationHandler) Stats(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	st, err := h.uc.Stats(c.UserContext(), uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// @Summary  Applications waiting for a follow-up
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} applicationResponse
// @Router   /applications/follow-ups [get]
func (h *ApplicationHandler) FollowUps(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	list, err := h.uc.NeedingFollowUp(c.UserContext(), uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, presentAll(list))
}

// @Summary  Bulk import applications
// @Description Invalid rows are reported by index; valid rows are created.
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    input body []application.ImportRecord true "records"
// @Security BearerAuth
// @Success  200 {object} application.ImportResult
// @Router   /applications/import [post]
func (h *ApplicationHandler) Import(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var records []application.ImportRecord
	if err := c.BodyParser(&records); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.uc.Import(c.UserContext(), uid, records)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Get application
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Security BearerAuth
// @Success  200 {object} applicationResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	a, err := h.uc.GetByID(c.UserContext(), id, uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if a == nil {
		return presenter.Error(c, http.StatusNotFound, "application not found")
	}
	return presenter.JSON(c, http.StatusOK, present(*a))
}

// @Summary  Update application
// @Tags     applications
// @Accept   json
// @Produce  json
// @Param    id    path string                   true "application id"
// @Param    input body updateApplicationRequest true "fields to change"
// @Security BearerAuth
// @Success  200 {object} applicationResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [patch]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req updateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	in := application.UpdateInput{
		ID:       id,
		UserID:   uid,
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
		Notes:    req.Notes,
		URL:      req.URL,
	}
	var err error
	if in.AppliedDate, err = dateField(req.AppliedDate); err != nil {
		return presenter.Fail(c, err)
	}
	if in.FollowedUpAt, err = dateField(req.FollowedUpAt); err != nil {
		return presenter.Fail(c, err)
	}
	if in.InterviewDate, err = dateField(req.InterviewDate); err != nil {
		return presenter.Fail(c, err)
	}
	a, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, present(a))
}

// @Summary  Delete application
// @Tags     applications
// @Param    id path string true "application id"
// @Security BearerAuth
// @Success  204
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), id, uid); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary  Record a follow-up now
// @Tags     applications
// @Produce  json
// @Param    id path string true "application id"
// @Security BearerAuth
// @Success  200 {object} applicationResponse
// @Router   /applications/{id}/follow-up [post]
func (h *ApplicationHandler) MarkFollowedUp(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	a, err := h.uc.MarkFollowedUp(c.UserContext(), id, uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, present(a))
}

func dateField(f opt.Field[*string]) (opt.Field[*time.Time], error) {
	if !f.Set {
		return opt.None[*time.Time](), nil
	}
	t, err := parseDate(f.Value)
	if err != nil {
		return opt.Field[*time.Time]{}, err
	}
	return opt.Some(t), nil
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/practice"
)

type PracticeHandler struct {
	uc practice.UseCase
}

func NewPracticeHandler(uc practice.UseCase) *PracticeHandler {
	return &PracticeHandler{uc: uc}
}

type startPracticeRequest struct {
	Type          practice.InterviewType `json:"type"`
	ApplicationID *uuid.UUID             `json:"applicationId"`
	QuestionCount int                    `json:"questionCount"`
}

type answerRequest struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

type sessionResponse struct {
	practice.Session
	TypeLabel            string `json:"typeLabel"`
	CompletionPercentage int    `json:"completionPercentage"`
	Complete             bool   `json:"complete"`
}

func presentSession(s practice.Session) sessionResponse {
	return sessionResponse{
		Session:              s,
		TypeLabel:            s.Type.Label(),
		CompletionPercentage: s.CompletionPercentage(),
		Complete:             s.IsComplete(),
	}
}

// @Summary  Start a practice interview
// @Description Generates questions with the AI. Passing an owned applicationId tailors them to that role.
// @Tags     practice
// @Accept   json
// @Produce  json
// @Param    input body startPracticeRequest true "session settings"
// @Security BearerAuth
// @Success  201 {object} sessionResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /practice [post]
func (h *PracticeHandler) Start(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var req startPracticeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.uc.Start(c.UserContext(), practice.StartInput{
		UserID:        uid,
		Type:          req.Type,
		ApplicationID: req.ApplicationID,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, presentSession(s))
}

// @Summary  List practice sessions
// @Tags     practice
// @Produce  json
// @Param    applicationId query string false "only sessions for this application"
// @Security BearerAuth
// @Success  200 {array} sessionResponse
// @Router   /practice [get]
func (h *PracticeHandler) List(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var appID *uuid.UUID
	if v := c.Query("applicationId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid applicationId")
		}
		appID = &id
	}
	list, err := h.uc.List(c.UserContext(), uid, appID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	out := make([]sessionResponse, len(list))
	for i, s := range list {
		out[i] = presentSession(s)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary  Get practice session
// @Tags     practice
// @Produce  json
// @Param    id path string true "session id"
// @Security BearerAuth
// @Success  200 {object} sessionResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /practice/{id} [get]
func (h *PracticeHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	s, err := h.uc.Get(c.UserContext(), id, uid)
	if err != nil {
		return presenter.Fail(c, err)
	}
	if s == nil {
		return presenter.Error(c, http.StatusNotFound, "practice session not found")
	}
	return presenter.JSON(c, http.StatusOK, presentSession(*s))
}

// @Summary  Answer a question and get feedback
// @Tags     practice
// @Accept   json
// @Produce  json
// @Param    id    path string        true "session id"
// @Param    input body answerRequest true "answer"
// @Security BearerAuth
// @Success  200 {object} practice.SubmitResult
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /practice/{id}/answers [post]
func (h *PracticeHandler) Answer(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.uc.SubmitAnswer(c.UserContext(), practice.SubmitInput{
		UserID:        uid,
		SessionID:     id,
		QuestionIndex: req.QuestionIndex,
		Answer:        req.Answer,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Delete practice session
// @Tags     practice
// @Param    id path string true "session id"
// @Security BearerAuth
// @Success  204
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /practice/{id} [delete]
func (h *PracticeHandler) Delete(c *fiber.Ctx) error {
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

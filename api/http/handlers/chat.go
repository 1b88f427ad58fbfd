package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/chat"
)

type ChatHandler struct {
	uc chat.UseCase
}

func NewChatHandler(uc chat.UseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

// Send answers one career-coach message. The client keeps the history.
// @Summary  Chat with the career coach
// @Tags     chat
// @Accept   json
// @Produce  json
// @Param    input body chatRequest true "message and prior turns"
// @Security BearerAuth
// @Success  200 {object} chat.SendResult
// @Failure  400 {object} presenter.ErrorResponse
// @Router   /chat [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	res, err := h.uc.Send(c.UserContext(), chat.SendInput{
		UserID:  uid,
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// @Summary  Suggested opening prompts
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string][]string
// @Router   /chat/suggestions [get]
func (h *ChatHandler) Suggestions(c *fiber.Ctx) error {
	uid, ok := currentUser(c)
	if !ok {
		return nil
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"prompts": h.uc.SuggestedPrompts(c.UserContext(), uid),
	})
}

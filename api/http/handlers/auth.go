package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nexphase/nexcareer/api/http/presenter"
	"github.com/nexphase/nexcareer/pkg/auth"
)

type AuthHandler struct {
	useCase auth.Service
}

func NewAuthHandler(useCase auth.Service) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type completeResetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// SignUp handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} auth.Session
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	session, err := h.useCase.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, session)
}

// SignIn handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} auth.Session
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	session, err := h.useCase.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, session)
}

// SignOut revokes the presented access token.
// @Summary  Logout
// @Tags     auth
// @Security BearerAuth
// @Success  204
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	if err := h.useCase.SignOut(c.UserContext(), token); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} auth.User
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	user, err := h.useCase.GetCurrentUser(c.UserContext(), token)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, user)
}

// ResetPassword always answers 202 so that callers cannot probe which
// emails are registered.
// @Summary Request a password reset link
// @Tags    auth
// @Accept  json
// @Param   input body resetRequest true "account email"
// @Success 202
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.ResetPassword(c.UserContext(), req.Email); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusAccepted)
}

// @Summary Set a new password with a reset token
// @Tags    auth
// @Accept  json
// @Param   input body completeResetRequest true "token and new password"
// @Success 204
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/password/reset/complete [post]
func (h *AuthHandler) CompletePasswordReset(c *fiber.Ctx) error {
	var req completeResetRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.useCase.CompletePasswordReset(c.UserContext(), req.Token, req.Password); err != nil {
		return presenter.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

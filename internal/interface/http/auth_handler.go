package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cineview/backend/internal/application"
	"github.com/cineview/backend/pkg/response"
	"github.com/cineview/backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userBody struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authBody struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Message(c, http.StatusBadRequest, "email already in use")
			return
		}
		h.Logger.WithError(err).WithField("op", "register").Error("registration failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}

	response.JSON(c, http.StatusCreated, authBody{
		Token: res.Token,
		User:  userBody{ID: res.User.ID, Username: res.User.Username, Email: res.User.Email},
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// One message for unknown email and wrong password.
			response.Message(c, http.StatusBadRequest, "invalid credentials")
			return
		}
		h.Logger.WithError(err).WithField("op", "login").Error("login failed")
		response.Message(c, http.StatusInternalServerError, "server error")
		return
	}

	response.JSON(c, http.StatusOK, authBody{
		Token: res.Token,
		User:  userBody{ID: res.User.ID, Username: res.User.Username, Email: res.User.Email},
	})
}

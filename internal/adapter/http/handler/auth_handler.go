package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
)

type AuthHandler struct {
	svc    port.AuthService
	tokens port.TokenService
}

func NewAuthHandler(svc port.AuthService, tokens port.TokenService) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var req request.SignUpRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid JSON body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Registration(c.Request.Context(), &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, response.UserResponse{
		UUID:      user.UUID.String(),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid JSON body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(c.Request.Context(), &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	token, err := a.tokens.CreateToken(user.Email)

	if err != nil {
		helper.SendInternalError(c, "Error creating access token")
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{Token: token})
}

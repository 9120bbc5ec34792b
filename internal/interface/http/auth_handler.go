package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
	"github.com/pinshelf/pinshelf-api/pkg/response"
	"github.com/pinshelf/pinshelf-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,urlname,min=3,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"firstName" binding:"omitempty,max=60"`
	LastName  string `json:"lastName" binding:"omitempty,max=60"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	user, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user, "verification code sent", nil)
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required,min=6"`
	Password        string `json:"password" binding:"required,pwd"`
}

// Login POST /auth/login. Dispatches an OTP; tokens only come from the
// verify step.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Auth.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dispatched": ok}, "verification code sent", nil)
}

type verifyLoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,otpcode"`
}

// LoginVerify POST /auth/login/verify
func (h *AuthHandler) LoginVerify(c *gin.Context) {
	var req verifyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	user, pair, err := h.Auth.VerifyForLogin(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user, "tokens": pair}, "login verified", nil)
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Reset POST /auth/reset
func (h *AuthHandler) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Auth.ResetPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dispatched": ok}, "reset code sent", nil)
}

type verifyResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,otpcode"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// ResetVerify POST /auth/reset/verify
func (h *AuthHandler) ResetVerify(c *gin.Context) {
	var req verifyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Auth.VerifyForResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": ok}, "password updated", nil)
}

// Logout POST /auth/logout (authenticated)
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), c.GetString(middleware.CtxUserIDKey)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	pair, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "tokens rotated", nil)
}

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

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// GetProfile GET /user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.Users.Profile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "", nil)
}

type updateProfileRequest struct {
	FirstName    string `json:"firstName" binding:"omitempty,max=60"`
	LastName     string `json:"lastName" binding:"omitempty,max=60"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone        string `json:"phone" binding:"omitempty,e164"`
	Address      string `json:"address" binding:"omitempty,max=200"`
	Bio          string `json:"bio" binding:"omitempty,max=500"`
	ProfileImage string `json:"profileImage" binding:"omitempty,max=120"`
}

// UpdateProfile PUT /user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	user, err := h.Users.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		Phone:        req.Phone,
		Address:      req.Address,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "profile updated", nil)
}

// ByUsername GET /user/:username
func (h *UserHandler) ByUsername(c *gin.Context) {
	user, err := h.Users.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "", nil)
}

type followRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Follow POST /user/follow
func (h *UserHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Users.Follow(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"following": ok}, "", nil)
}

// Unfollow POST /user/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Users.Unfollow(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unfollowed": ok}, "", nil)
}

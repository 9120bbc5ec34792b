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

type PostHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

type postListQuery struct {
	PageIndex string `form:"pageIndex" binding:"page"`
	PageSize  string `form:"pageSize" binding:"page"`
	Author    string `form:"author"`
}

// List GET /post; optionally filtered to one author.
func (h *PostHandler) List(c *gin.Context) {
	var q postListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	var err error
	var list any
	if q.Author != "" {
		list, err = h.Posts.ListByAuthor(c.Request.Context(), q.Author, q.PageIndex, q.PageSize)
	} else {
		list, err = h.Posts.List(c.Request.Context(), q.PageIndex, q.PageSize)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

// Get GET /post/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post, "", nil)
}

type postCreateRequest struct {
	Content string   `json:"content" binding:"required,max=5000"`
	Images  []string `json:"images" binding:"omitempty,dive,max=120"`
}

// Create POST /post/create
func (h *PostHandler) Create(c *gin.Context) {
	var req postCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	post, err := h.Posts.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Content, req.Images)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post, "", nil)
}

type postDeleteRequest struct {
	ID string `json:"id" binding:"required"`
}

// Delete POST /post/delete; author only.
func (h *PostHandler) Delete(c *gin.Context) {
	var req postDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Posts.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": ok}, "post deleted", nil)
}

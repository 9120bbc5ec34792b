package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
	"github.com/pinshelf/pinshelf-api/pkg/response"
	"github.com/pinshelf/pinshelf-api/pkg/validation"
)

type CategoryHandler struct {
	Categories *application.CategoryService
	Logger     *logrus.Logger
}

func NewCategoryHandler(categories *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Logger: logger}
}

type categoryCreateRequest struct {
	Name  string `json:"name" binding:"required,urlname,max=40"`
	Label string `json:"label" binding:"required,max=60"`
	Top   bool   `json:"top"`
}

// Create POST /category/create (admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), application.CategoryInput{Name: req.Name, Label: req.Label, Top: req.Top})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "", nil)
}

type categoryUpdateRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required,urlname,max=40"`
	Label string `json:"label" binding:"required,max=60"`
	Top   bool   `json:"top"`
}

// Update POST /category/update (admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Categories.Update(c.Request.Context(), req.ID, application.CategoryInput{Name: req.Name, Label: req.Label, Top: req.Top})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": ok}, "", nil)
}

type categoryDeleteRequest struct {
	ID string `json:"id" binding:"required"`
}

// Delete POST /category/delete (admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
	var req categoryDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Categories.Delete(c.Request.Context(), req.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": ok}, "", nil)
}

type pageQuery struct {
	PageIndex string `form:"pageIndex" binding:"page"`
	PageSize  string `form:"pageSize" binding:"page"`
}

// List GET /category
func (h *CategoryHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	list, err := h.Categories.List(c.Request.Context(), q.PageIndex, q.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

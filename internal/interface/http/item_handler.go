package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/interface/middleware"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
	"github.com/pinshelf/pinshelf-api/pkg/response"
	"github.com/pinshelf/pinshelf-api/pkg/validation"
)

type ItemHandler struct {
	Items  *application.ItemService
	Logger *logrus.Logger
}

func NewItemHandler(items *application.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Items: items, Logger: logger}
}

// List GET /item
func (h *ItemHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	list, err := h.Items.List(c.Request.Context(), q.PageIndex, q.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

// Get GET /item/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.Items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item, "", nil)
}

// ListFavorites GET /item/favorites; the catalog page annotated with the
// caller's favorite marks.
func (h *ItemHandler) ListFavorites(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	list, err := h.Items.ListWithFavorites(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), q.PageIndex, q.PageSize)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, "", nil)
}

type itemSearchQuery struct {
	Q    string `form:"q" binding:"required,min=2"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// Search GET /item/search
func (h *ItemHandler) Search(c *gin.Context) {
	var q itemSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	hits, err := h.Items.Search(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "", nil)
}

type itemCreateRequest struct {
	URLName       string   `json:"urlName" binding:"required,urlname,max=60"`
	Title         string   `json:"title" binding:"required,max=120"`
	Description   string   `json:"description" binding:"omitempty,max=2000"`
	TopCategory   string   `json:"topCategory" binding:"required,max=40"`
	SubCategories []string `json:"subCategories" binding:"omitempty,dive,max=40"`
	Image         struct {
		Filename string `json:"filename" binding:"required"`
		Mimetype string `json:"mimetype" binding:"required"`
	} `json:"image" binding:"required"`
}

// Create POST /item/create
func (h *ItemHandler) Create(c *gin.Context) {
	var req itemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	item, err := h.Items.Create(c.Request.Context(), application.CreateItemInput{
		URLName:       req.URLName,
		Title:         req.Title,
		Description:   req.Description,
		TopCategory:   req.TopCategory,
		SubCategories: req.SubCategories,
		Image:         entity.ItemImage{Filename: req.Image.Filename, Mimetype: req.Image.Mimetype},
	}, c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item, "", nil)
}

type itemIDRequest struct {
	ID string `json:"id" binding:"required"`
}

// Delete POST /item/delete; soft delete, creator only.
func (h *ItemHandler) Delete(c *gin.Context) {
	var req itemIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	item, err := h.Items.Delete(c.Request.Context(), req.ID, c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item, "item deleted", nil)
}

// Favorite POST /item/favorite; toggles and reports the new state.
func (h *ItemHandler) Favorite(c *gin.Context) {
	var req itemIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	on, err := h.Items.ToggleFavorite(c.Request.Context(), req.ID, c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorite": on}, "", nil)
}

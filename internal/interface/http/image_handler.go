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

type ImageHandler struct {
	Images *application.ImageService
	Logger *logrus.Logger
}

func NewImageHandler(images *application.ImageService, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{Images: images, Logger: logger}
}

// Upload POST /image/upload; multipart with exactly one "image" file.
// A request without the file presents as a missing resource.
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.FromError(c, apperror.NotFound("image file", "image"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	img, err := h.Images.Upload(c.Request.Context(), fh.Filename, contentType, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"image": img}, "image uploaded", nil)
}

type imageDeleteRequest struct {
	Filename string `json:"filename" binding:"required,max=120"`
}

// Delete POST /image/delete
func (h *ImageHandler) Delete(c *gin.Context) {
	var req imageDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(validation.ToDetails(err)))
		return
	}
	ok, err := h.Images.Delete(c.Request.Context(), req.Filename)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": ok}, "image deleted", nil)
}

// Get GET /image/:filename; looks up the record for a generated filename.
func (h *ImageHandler) Get(c *gin.Context) {
	img, err := h.Images.FindByFilename(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img, "", nil)
}

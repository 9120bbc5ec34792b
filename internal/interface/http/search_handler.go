package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pinshelf/pinshelf-api/internal/application"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
	"github.com/pinshelf/pinshelf-api/pkg/response"
)

type SearchHandler struct {
	Search *application.SearchService
	Logger *logrus.Logger
}

func NewSearchHandler(search *application.SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Search: search, Logger: logger}
}

// Get POST /search/get; proxies the multipart image plus page field to the
// external similarity search and returns its payload untouched.
func (h *SearchHandler) Get(c *gin.Context) {
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

	data, err := h.Search.ByImage(c.Request.Context(), fh.Filename, f, c.PostForm("page"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data, "", nil)
}

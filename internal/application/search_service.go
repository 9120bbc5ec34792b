package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// SearchService proxies image-based search to the external search service.
type SearchService struct {
	BaseURL string
	Client  *http.Client
	Logger  *logrus.Logger
}

func NewSearchService(baseURL string, logger *logrus.Logger) *SearchService {
	return &SearchService{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

type searchReply struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ByImage forwards the uploaded image as multipart form data and returns the
// search service's result payload untouched.
func (s *SearchService) ByImage(ctx context.Context, filename string, file io.Reader, page string) (json.RawMessage, error) {
	if s.BaseURL == "" {
		return nil, apperror.Declined("image search is not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, err
	}
	if page != "" {
		if err := mw.WriteField("page", page); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.WithError(err).Error("search service unreachable")
		return nil, fmt.Errorf("search service request: %w", err)
	}
	defer resp.Body.Close()

	var reply searchReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("search service reply: %w", err)
	}
	if !reply.Success {
		msg := reply.Message
		if msg == "" {
			msg = "image search failed"
		}
		return nil, apperror.Declined(msg)
	}
	return reply.Data, nil
}

package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
)

// BlobStore abstracts the external object storage used for image binaries.
type BlobStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

type ImageService struct {
	Images   repository.ImageRepository
	Blobs    BlobStore
	Provider string
	Logger   *logrus.Logger
}

func NewImageService(images repository.ImageRepository, blobs BlobStore, provider string, logger *logrus.Logger) *ImageService {
	return &ImageService{Images: images, Blobs: blobs, Provider: provider, Logger: logger}
}

// Upload streams the file to blob storage under a generated name and records
// the image document. The blob write and the record insert are not atomic;
// an orphaned blob from a failed insert is logged and left for cleanup.
func (s *ImageService) Upload(ctx context.Context, originalName, contentType string, r io.Reader) (*entity.Image, error) {
	if s.Blobs == nil {
		return nil, apperror.Declined("image storage is not configured")
	}
	ext := strings.ToLower(path.Ext(originalName))
	filename := uuid.NewString() + ext
	objectPath := "images/" + filename

	url, err := s.Blobs.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	img := entity.NewImage(filename, contentType, url, s.Provider)
	if err := s.Images.Create(ctx, img); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Warn("image record insert failed, blob orphaned")
		}
		return nil, err
	}
	return img, nil
}

// Delete removes the record first, then the blob. A failed blob delete is
// logged but does not fail the request; the record is already gone.
func (s *ImageService) Delete(ctx context.Context, filename string) (bool, error) {
	img, err := s.Images.FindOneBy(ctx, bson.M{"filename": filename}, nil)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, apperror.NotFound("image", filename)
		}
		return false, err
	}
	if _, err := s.Images.Delete(ctx, img.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if s.Blobs != nil {
		if err := s.Blobs.Delete(ctx, "images/"+img.Filename); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("filename", img.Filename).Warn("blob delete failed")
		}
	}
	return true, nil
}

func (s *ImageService) FindByFilename(ctx context.Context, filename string) (*entity.Image, error) {
	img, err := s.Images.FindOneBy(ctx, bson.M{"filename": filename}, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("image", filename)
	}
	return img, err
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/TravelWisata_BackEnd/internal/media"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

type ImageServiceConfig struct {
	Bucket   string
	MaxBytes int64
}

type GalleryImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type GalleryUploadResult struct {
	ObjectName  string `json:"object_name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// ImageService validates admin gallery uploads and stores them in object
// storage. With no storage configured every upload fails with
// ErrUploadsDisabled.
type ImageService struct {
	storage   ports.ObjectStorage
	processor media.Processor
	bucket    string
	now       func() time.Time
}

func NewImageService(storage ports.ObjectStorage, processor media.Processor, cfg ImageServiceConfig) *ImageService {
	if processor == nil {
		processor = media.NewValidator(cfg.MaxBytes, 0)
	}
	return &ImageService{
		storage:   storage,
		processor: processor,
		bucket:    strings.TrimSpace(cfg.Bucket),
		now:       time.Now,
	}
}

func (s *ImageService) Enabled() bool {
	return s.storage != nil && s.bucket != ""
}

func (s *ImageService) UploadGalleryImage(ctx context.Context, clientID string, upload GalleryImageUpload) (*GalleryUploadResult, error) {
	if !s.Enabled() {
		return nil, ErrUploadsDisabled
	}
	if upload.Reader == nil {
		return nil, fmt.Errorf("%w: image file is required", ErrImageValidation)
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	})
	if err != nil {
		if errors.Is(err, media.ErrEmpty) || errors.Is(err, media.ErrTooLarge) ||
			errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrUndecodable) {
			return nil, fmt.Errorf("%w: %v", ErrImageValidation, err)
		}
		return nil, err
	}

	objectName := fmt.Sprintf("destinations/%s/%s/%s%s",
		s.now().UTC().Format("2006/01"), clientID, uuid.NewString(), result.Extension)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, err
	}
	return &GalleryUploadResult{
		ObjectName:  objectName,
		URL:         url,
		ContentType: result.ContentType,
		Width:       result.Width,
		Height:      result.Height,
	}, nil
}

package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestImageService_UploadGalleryImage(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewImageService(storage, nil, ImageServiceConfig{Bucket: "travelwisata-destinations"})
	data := testPNG(t)

	res, err := svc.UploadGalleryImage(context.Background(), "client-1", GalleryImageUpload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		FileName:    "kuta.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("UploadGalleryImage returned error: %v", err)
	}
	if storage.bucket != "travelwisata-destinations" || storage.contentType != "image/png" {
		t.Fatalf("unexpected upload target %+v", storage)
	}
	if !strings.Contains(storage.objectName, "/client-1/") || !strings.HasSuffix(storage.objectName, ".png") {
		t.Fatalf("unexpected object name %s", storage.objectName)
	}
	if !bytes.Equal(storage.body, data) {
		t.Fatal("expected uploaded bytes to match")
	}
	if res.URL != "https://cdn.example.com/travelwisata-destinations/"+storage.objectName || res.Width != 8 || res.Height != 6 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImageService_RejectsInvalidImages(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewImageService(storage, nil, ImageServiceConfig{Bucket: "b", MaxBytes: 16})

	_, err := svc.UploadGalleryImage(context.Background(), "c", GalleryImageUpload{Reader: strings.NewReader("plain text"), ContentType: "text/plain"})
	if !errors.Is(err, ErrImageValidation) {
		t.Fatalf("expected ErrImageValidation, got %v", err)
	}
	data := testPNG(t)
	_, err = svc.UploadGalleryImage(context.Background(), "c", GalleryImageUpload{Reader: bytes.NewReader(data), Size: int64(len(data))})
	if !errors.Is(err, ErrImageValidation) {
		t.Fatalf("expected ErrImageValidation for oversized file, got %v", err)
	}
	if storage.objectName != "" {
		t.Fatal("expected nothing to be uploaded")
	}
}

func TestImageService_Disabled(t *testing.T) {
	svc := NewImageService(nil, nil, ImageServiceConfig{})
	if svc.Enabled() {
		t.Fatal("expected uploads disabled without storage")
	}
	if _, err := svc.UploadGalleryImage(context.Background(), "c", GalleryImageUpload{}); !errors.Is(err, ErrUploadsDisabled) {
		t.Fatalf("expected ErrUploadsDisabled, got %v", err)
	}
}

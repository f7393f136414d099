package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     int64 = 5 << 20
	DefaultMaxDimension       = 8192
)

var (
	ErrEmpty           = errors.New("media: empty image data")
	ErrTooLarge        = errors.New("media: image exceeds size limit")
	ErrUnsupportedType = errors.New("media: unsupported image type")
	ErrUndecodable     = errors.New("media: image could not be decoded")
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

type Processor interface {
	Process(ctx context.Context, upload Upload) (*Result, error)
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Validator accepts gallery uploads only when the bytes decode as one of the
// allowed formats and fit the configured limits. The declared content type
// is advisory; the sniffed type wins.
type Validator struct {
	maxBytes     int64
	maxDimension int
}

func NewValidator(maxBytes int64, maxDimension int) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Validator{maxBytes: maxBytes, maxDimension: maxDimension}
}

func (v *Validator) MaxBytes() int64 { return v.maxBytes }

func (v *Validator) Process(ctx context.Context, upload Upload) (*Result, error) {
	if upload.Reader == nil {
		return nil, ErrEmpty
	}
	if upload.Size > v.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, upload.Size)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, v.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if int64(len(data)) > v.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, v.maxBytes)
	}

	declared := normalizeContentType(upload.ContentType, upload.FileName)
	if declared != "" && !strings.HasPrefix(declared, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, declared)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	contentType := "image/" + format
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, format)
	}
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") && sniffed != contentType {
		return nil, fmt.Errorf("%w: content sniffed as %s", ErrUnsupportedType, sniffed)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUndecodable, cfg.Width, cfg.Height)
	}
	if cfg.Width > v.maxDimension || cfg.Height > v.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrTooLarge, cfg.Width, cfg.Height, v.maxDimension)
	}

	return &Result{
		Bytes:       data,
		ContentType: contentType,
		Extension:   ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func normalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return ""
}

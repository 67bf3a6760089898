package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type uploadService struct {
	uploadDir string
	baseURL   string
	logger    *slog.Logger
}

// NewUploadService stores course images under uploadDir and returns
// URLs below baseURL (the public /uploads/courses path).
func NewUploadService(uploadDir, baseURL string, logger *slog.Logger) UploadService {
	return &uploadService{
		uploadDir: uploadDir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		logger:    logger,
	}
}

func (s *uploadService) SaveCourseImage(ctx context.Context, fileName string, contentType string, size int64, r io.Reader) (*UploadResult, error) {
	if r == nil || fileName == "" {
		return nil, ErrNoFileProvided
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return nil, ErrFileTypeInvalid
	}
	if size > maxUploadSize {
		return nil, ErrFileTooLarge
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uploadFileName(fileName)
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	// Copy one byte past the limit so oversized bodies with a lying
	// Content-Length are still caught.
	written, err := io.Copy(dst, io.LimitReader(r, maxUploadSize+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if written > maxUploadSize {
		os.Remove(path)
		return nil, ErrFileTooLarge
	}

	s.logger.Info("Image uploaded", "file", name, "bytes", written)
	return &UploadResult{URL: s.baseURL + "/" + name}, nil
}

// uploadFileName builds a collision-free name keeping only the
// original extension.
func uploadFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	token := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), token, ext)
}

package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestUploadService(t *testing.T) (UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewUploadService(dir, "http://localhost:8080/uploads/courses", logger), dir
}

func TestUploadService_SaveCourseImage(t *testing.T) {
	service, dir := newTestUploadService(t)
	ctx := context.Background()
	body := []byte("fake image bytes")

	result, err := service.SaveCourseImage(ctx, "photo.JPG", "image/jpeg", int64(len(body)), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("SaveCourseImage failed: %v", err)
	}

	if !strings.HasPrefix(result.URL, "http://localhost:8080/uploads/courses/") {
		t.Errorf("URL should live under the public upload path, got %s", result.URL)
	}
	if !strings.HasSuffix(result.URL, ".jpg") {
		t.Errorf("Extension should be kept lower-cased, got %s", result.URL)
	}

	name := result.URL[strings.LastIndex(result.URL, "/")+1:]
	stored, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if !bytes.Equal(stored, body) {
		t.Error("Stored bytes differ from the upload")
	}
}

func TestUploadService_RejectsMissingFile(t *testing.T) {
	service, _ := newTestUploadService(t)

	if _, err := service.SaveCourseImage(context.Background(), "", "image/png", 10, bytes.NewReader(nil)); !errors.Is(err, ErrNoFileProvided) {
		t.Fatalf("Expected ErrNoFileProvided, got %v", err)
	}
	if _, err := service.SaveCourseImage(context.Background(), "a.png", "image/png", 10, nil); !errors.Is(err, ErrNoFileProvided) {
		t.Fatalf("Expected ErrNoFileProvided for nil reader, got %v", err)
	}
}

func TestUploadService_RejectsDisallowedTypes(t *testing.T) {
	service, dir := newTestUploadService(t)
	body := []byte("not an image")

	for _, contentType := range []string{"application/pdf", "image/gif", "text/html", ""} {
		if _, err := service.SaveCourseImage(context.Background(), "f.bin", contentType, int64(len(body)), bytes.NewReader(body)); !errors.Is(err, ErrFileTypeInvalid) {
			t.Errorf("Expected ErrFileTypeInvalid for %q, got %v", contentType, err)
		}
	}

	// Accepted types are case-insensitive.
	if _, err := service.SaveCourseImage(context.Background(), "f.webp", "IMAGE/WEBP", int64(len(body)), bytes.NewReader(body)); err != nil {
		t.Errorf("Upper-cased content type should pass, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Only the accepted upload should be on disk, found %d files", len(entries))
	}
}

func TestUploadService_RejectsOversizedUploads(t *testing.T) {
	service, dir := newTestUploadService(t)
	ctx := context.Background()

	// Declared size over the cap is refused before any write.
	if _, err := service.SaveCourseImage(ctx, "big.png", "image/png", maxUploadSize+1, bytes.NewReader([]byte("x"))); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Expected ErrFileTooLarge from the declared size, got %v", err)
	}

	// A body larger than its declared size is caught while copying and
	// the partial file is removed.
	oversized := bytes.Repeat([]byte("a"), maxUploadSize+1)
	if _, err := service.SaveCourseImage(ctx, "liar.png", "image/png", 100, bytes.NewReader(oversized)); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Expected ErrFileTooLarge from the real body, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Rejected uploads must not leave files behind, found %d", len(entries))
	}

	// Exactly at the cap is fine.
	exact := bytes.Repeat([]byte("a"), maxUploadSize)
	if _, err := service.SaveCourseImage(ctx, "max.png", "image/png", maxUploadSize, bytes.NewReader(exact)); err != nil {
		t.Errorf("Upload at the size cap should succeed, got %v", err)
	}
}

package infra

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const shiftReportsSubdir = "shift_reports"

// allowedPhotoExts whitelists the extensions accepted for report photos.
var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// FileStore persists uploaded report photos on local disk under baseDir and
// maps stored paths to their public /uploads URLs.
type FileStore struct {
	baseDir string
}

// NewFileStore ensures the upload directories exist.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, shiftReportsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create upload dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the root upload directory (served statically at /uploads).
func (s *FileStore) BaseDir() string { return s.baseDir }

// SaveShiftReportPhoto stores an uploaded photo under a generated uuid name
// and returns the stored path.
func (s *FileStore) SaveShiftReportPhoto(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", fmt.Errorf("filestore: no file uploaded")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedPhotoExts[ext] {
		return "", fmt.Errorf("filestore: file type %q not allowed", ext)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("filestore: open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	path := filepath.Join(s.baseDir, shiftReportsSubdir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("filestore: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("filestore: write file: %w", err)
	}

	return path, nil
}

// PhotoURL normalizes a stored photo path into its public URL. Stored values
// have drifted over time (absolute URLs, uploads/-relative paths, bare file
// names), so every historical shape is handled.
func (s *FileStore) PhotoURL(path string) string {
	if path == "" {
		return ""
	}
	path = filepath.ToSlash(path)

	switch {
	case strings.HasPrefix(path, "/"):
		return path
	case strings.HasPrefix(path, "uploads/"):
		return "/" + path
	case !strings.Contains(path, "/"):
		// Bare file names were written by an early frontend build.
		return "/uploads/" + shiftReportsSubdir + "/" + path
	default:
		return "/uploads/" + path
	}
}

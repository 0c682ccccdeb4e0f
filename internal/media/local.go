package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes renders below a directory on disk.
type LocalUploader struct {
	BaseDir string
}

// NewLocalUploader constructs an uploader rooted at baseDir, or at
// <tmp>/homelytics when baseDir is empty.
func NewLocalUploader(baseDir string) (*LocalUploader, error) {
	dir := baseDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "homelytics")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local media dir: %w", err)
	}
	return &LocalUploader{BaseDir: dir}, nil
}

// Upload writes the content to BaseDir/<key> and returns the file path as key.
func (l *LocalUploader) Upload(_ context.Context, input UploadInput) (UploadResult, error) {
	if input.Body == nil {
		return UploadResult{}, fmt.Errorf("upload body is required")
	}
	rel := filepath.Clean(filepath.FromSlash(input.Key))
	if input.Key == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return UploadResult{}, fmt.Errorf("invalid object key %q", input.Key)
	}

	dest := filepath.Join(l.BaseDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return UploadResult{}, fmt.Errorf("create media subdir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Body); err != nil {
		os.Remove(dest)
		return UploadResult{}, fmt.Errorf("write media file: %w", err)
	}
	return UploadResult{Key: dest}, nil
}

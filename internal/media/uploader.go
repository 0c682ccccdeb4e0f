package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrUploaderDisabled indicates that archival is not configured.
var ErrUploaderDisabled = errors.New("media uploader disabled")

// UploadInput wraps the payload required for persisting a file.
type UploadInput struct {
	Key         string
	ContentType string
	Body        io.Reader
	Size        int64
}

// UploadResult captures the stored object key and, when public, its URL.
type UploadResult struct {
	Key string
	URL string
}

// Uploader hides the backing implementation for storing files.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput) (UploadResult, error)
}

type disabledUploader struct{}

func (disabledUploader) Upload(_ context.Context, _ UploadInput) (UploadResult, error) {
	return UploadResult{}, ErrUploaderDisabled
}

// Disabled returns an uploader that always signals disabled uploads.
func Disabled() Uploader {
	return disabledUploader{}
}

// RenderKey names an archived render: renders/YYYY/MM/DD/<uuid>.png.
func RenderKey(now time.Time) string {
	return path.Join("renders", now.UTC().Format("2006/01/02"), uuid.NewString()+".png")
}

// ArchiveRender stores a rendered PNG under a fresh RenderKey.
func ArchiveRender(ctx context.Context, u Uploader, png []byte) (UploadResult, error) {
	if u == nil {
		return UploadResult{}, ErrUploaderDisabled
	}
	res, err := u.Upload(ctx, UploadInput{
		Key:         RenderKey(time.Now()),
		ContentType: "image/png",
		Body:        bytes.NewReader(png),
		Size:        int64(len(png)),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("archive render: %w", err)
	}
	return res, nil
}

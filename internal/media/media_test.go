package media

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRenderKey(t *testing.T) {
	key := RenderKey(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(key, "renders/2026/10/19/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestArchiveRenderLocal(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ArchiveRender(context.Background(), u, []byte("png-bytes"))
	if err != nil {
		t.Fatalf("ArchiveRender: %v", err)
	}
	if !strings.HasPrefix(res.Key, dir) {
		t.Fatalf("key %q outside %q", res.Key, dir)
	}
	data, err := os.ReadFile(res.Key)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored %q, %v", data, err)
	}
}

func TestLocalUploaderRejectsEscapingKeys(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../evil.png", filepath.Join(string(filepath.Separator), "abs.png")} {
		_, err := u.Upload(context.Background(), UploadInput{Key: key, Body: bytes.NewReader(nil)})
		if err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}

func TestDisabledUploader(t *testing.T) {
	if _, err := ArchiveRender(context.Background(), Disabled(), []byte("x")); !errors.Is(err, ErrUploaderDisabled) {
		t.Fatalf("expected ErrUploaderDisabled, got %v", err)
	}
	if _, err := ArchiveRender(context.Background(), nil, []byte("x")); !errors.Is(err, ErrUploaderDisabled) {
		t.Fatalf("expected ErrUploaderDisabled for nil uploader, got %v", err)
	}
}

func TestNewUploaderWithoutBucketIsDisabled(t *testing.T) {
	u, err := NewUploader(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := u.Upload(context.Background(), UploadInput{}); !errors.Is(err, ErrUploaderDisabled) {
		t.Fatalf("expected disabled uploader, got %v", err)
	}
}

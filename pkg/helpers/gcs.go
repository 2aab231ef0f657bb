package helpers

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSUploader stores profile images in a bucket and returns their public URL.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
	Folder string
}

func NewGCSUploader(client *storage.Client, bucket, folder string) *GCSUploader {
	if folder == "" {
		folder = "profile-images"
	}
	return &GCSUploader{Client: client, Bucket: bucket, Folder: folder}
}

// Upload writes the image bytes to a fresh object and returns its URL.
func (u *GCSUploader) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if u.Client == nil || u.Bucket == "" {
		return "", fmt.Errorf("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := u.Folder + "/" + uuid.NewString() + ext

	wc := u.Client.Bucket(u.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(u.Bucket, objectPath), nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSUploader writes objects to a Cloud Storage bucket.
type GCSUploader struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCSUploader connects with application default credentials. baseURL
// overrides the storage.googleapis.com/<bucket> prefix, e.g. for a CDN.
func NewGCSUploader(ctx context.Context, bucket, baseURL string) (*GCSUploader, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("media: gcs bucket is required")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewGCSUploaderWithClient(client, bucket, baseURL)
}

// NewGCSUploaderWithClient wraps an existing client.
func NewGCSUploaderWithClient(client *gcs.Client, bucket, baseURL string) (*GCSUploader, error) {
	if client == nil {
		return nil, errors.New("media: storage client is required")
	}
	if baseURL == "" {
		baseURL = gcsPublicHost + "/" + bucket
	}
	return &GCSUploader{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, kind Kind, filename, contentType string, r io.Reader) (string, error) {
	if err := CheckType(kind, contentType); err != nil {
		return "", err
	}

	name := objectName(kind, filename)
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", name, err)
	}
	return u.baseURL + "/" + name, nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// Package storage wraps the MinIO client for evidence photo uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// MaxEvidenceSize is the upload size limit for evidence photos.
const MaxEvidenceSize = 6 * 1024 * 1024

// allowedContentTypes limits evidence uploads to images.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// EvidenceStore uploads evidence photos and returns public retrieval URLs.
type EvidenceStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewEvidenceStore builds a store over client. client may be nil, in which
// case uploads fail with a configuration error.
func NewEvidenceStore(client *minio.Client, bucket, publicURL string) *EvidenceStore {
	return &EvidenceStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// ValidateEvidence checks content type and size before uploading. Returns the
// file extension for the object key.
func ValidateEvidence(contentType string, size int64) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("solo se permiten imágenes (jpg, png, webp)")
	}
	if size > MaxEvidenceSize {
		return "", fmt.Errorf("la imagen supera el tamaño máximo de 6MB")
	}
	return ext, nil
}

// Upload stores the object under key and returns its public URL.
func (s *EvidenceStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("object storage not configured")
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload evidence: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Package minio implements store.MediaStore on MinIO/S3-compatible
// object storage. Uploaded product images get a key of the form
// "products/<uuid>.<ext>" which doubles as the asset ID used to destroy
// the object later.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tranqv/storefront-api/internal/config"
	"github.com/tranqv/storefront-api/internal/store"
)

// allowedContentTypes is the accepted image type allow-list.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaStorage is the MinIO adapter for product image assets.
type MediaStorage struct {
	cfg    config.MediaConfig
	client *mclient.Client
}

var _ store.MediaStore = (*MediaStorage)(nil)

// New creates the MinIO client, normalizes the endpoint (scheme decides
// Secure) and fail-fast checks that the target bucket exists.
func New(ctx context.Context, cfg config.MediaConfig) (*MediaStorage, error) {
	const op = "minio.New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &MediaStorage{cfg: cfg, client: client}, nil
}

// Upload stores raw image bytes and returns the created asset.
func (s *MediaStorage) Upload(ctx context.Context, data []byte, contentType string) (*store.MediaAsset, error) {
	const op = "minio.Upload"

	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, store.ErrInvalidMedia
	}

	size := int64(len(data))
	if size <= 0 || size > s.cfg.MaxSizeBytes {
		return nil, store.ErrInvalidMedia
	}

	key := path.Join("products", uuid.NewString()+ext)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), size,
		mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	base := strings.TrimRight(s.cfg.PublicURL, "/")

	return &store.MediaAsset{
		URL:     base + "/" + key,
		AssetID: key,
	}, nil
}

// Destroy releases a previously uploaded asset.
func (s *MediaStorage) Destroy(ctx context.Context, assetID string) error {
	const op = "minio.Destroy"

	if _, err := s.client.StatObject(ctx, s.cfg.Bucket, assetID, mclient.StatObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return store.ErrMediaNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, assetID, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

package store

import "context"

// MediaAsset identifies an uploaded image on the media host.
type MediaAsset struct {
	// URL is the publicly reachable address of the asset.
	URL string

	// AssetID is the host-side identifier needed to destroy the asset.
	AssetID string
}

// MediaStore defines the interface to the external media host.
type MediaStore interface {
	// Upload stores raw image bytes and returns the created asset.
	// Returns ErrInvalidMedia when contentType is not an accepted image
	// type or the payload exceeds the configured size limit.
	Upload(ctx context.Context, data []byte, contentType string) (*MediaAsset, error)

	// Destroy releases a previously uploaded asset. Destroying an asset
	// that no longer exists returns ErrMediaNotFound.
	Destroy(ctx context.Context, assetID string) error
}

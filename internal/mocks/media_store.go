package mocks

import (
	"context"
	"fmt"

	"github.com/tranqv/storefront-api/internal/store"
)

// MockMediaStore implements store.MediaStore for testing.
type MockMediaStore struct {
	UploadFn  func(ctx context.Context, data []byte, contentType string) (*store.MediaAsset, error)
	DestroyFn func(ctx context.Context, assetID string) error

	// Assets maps asset ID to stored content.
	Assets    map[string][]byte
	Uploads   int
	Destroyed []string
}

// NewMockMediaStore creates a new mock media store.
func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{
		Assets: make(map[string][]byte),
	}
}

// Upload implements the MediaStore interface.
func (m *MockMediaStore) Upload(ctx context.Context, data []byte, contentType string) (*store.MediaAsset, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, data, contentType)
	}

	m.Uploads++
	assetID := fmt.Sprintf("products/asset-%d", m.Uploads)
	m.Assets[assetID] = data
	return &store.MediaAsset{
		URL:     "https://media.test/" + assetID,
		AssetID: assetID,
	}, nil
}

// Destroy implements the MediaStore interface.
func (m *MockMediaStore) Destroy(ctx context.Context, assetID string) error {
	if m.DestroyFn != nil {
		return m.DestroyFn(ctx, assetID)
	}

	if _, exists := m.Assets[assetID]; !exists {
		return store.ErrMediaNotFound
	}
	delete(m.Assets, assetID)
	m.Destroyed = append(m.Destroyed, assetID)
	return nil
}

var _ store.MediaStore = (*MockMediaStore)(nil)

package store

import "errors"

// Sentinel errors returned by store implementations. Services and
// handlers match on these with errors.Is rather than inspecting
// driver-specific errors.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates a user with the same email already exists.
	ErrEmailExists = errors.New("email already exists")

	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductNameExists indicates a product with the same name
	// (case-insensitive) already exists.
	ErrProductNameExists = errors.New("product name already exists")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists indicates a category with the same name
	// already exists.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrMediaNotFound indicates the referenced media asset does not exist.
	ErrMediaNotFound = errors.New("media asset not found")

	// ErrInvalidMedia indicates the uploaded content is not an accepted
	// image type or exceeds the size limit.
	ErrInvalidMedia = errors.New("invalid media content")
)

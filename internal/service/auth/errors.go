package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidCredentials merges "email not found" and "wrong password"
	// so responses cannot be used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the token is malformed or its signature doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or
	// its signature doesn't match.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrUnknownRefreshToken indicates no user record currently stores
	// this refresh token; a rotated-out token lands here even when its
	// signature and expiry are still valid.
	ErrUnknownRefreshToken = errors.New("unknown refresh token")

	// ErrWrongTokenType indicates an access token was presented where a
	// refresh token was expected, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")
)

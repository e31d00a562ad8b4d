// Package api implements the HTTP handlers, request/response DTOs and
// error mapping of the admin backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/api/shared"
	"github.com/tranqv/storefront-api/internal/domain"
)

// maxJSONBodyBytes caps request bodies to keep a single oversized
// payload from tying up the decoder.
const maxJSONBodyBytes = 1 << 20

// RespondWithJSON re-exports the shared responder for handler use.
var RespondWithJSON = shared.RespondWithJSON

// RespondWithError re-exports the shared error responder for handler use.
var RespondWithError = shared.RespondWithError

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxJSONBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	return nil
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.ErrInvalidID
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}

	return id, nil
}

// authUserFromRequest extracts the authenticated user placed in the
// context by the authentication middleware. It writes a 401 and returns
// false if the middleware did not run.
func authUserFromRequest(w http.ResponseWriter, r *http.Request) (shared.AuthenticatedUser, bool) {
	user, ok := shared.AuthUserFrom(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "No token, authorization denied")
		return shared.AuthenticatedUser{}, false
	}
	return user, true
}

// errInvalidBody is returned by form parsing helpers on malformed input.
var errInvalidBody = errors.New("invalid request body")

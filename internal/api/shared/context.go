// Package shared holds request-scoped helpers used by handlers and
// middleware: typed context keys, trace IDs and JSON responders.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tranqv/storefront-api/internal/domain"
)

// ContextKey is the key type for context values set by this package.
type ContextKey string

const (
	// AuthUserContextKey is the context key for the authenticated user.
	AuthUserContextKey ContextKey = "authUser"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// traceIDLength is the number of random bytes in a trace ID.
	traceIDLength = 16 // 32 hex characters
)

// AuthenticatedUser is the decoded token payload attached to the request
// context by the authentication middleware. One flat shape for every
// authorization check.
type AuthenticatedUser struct {
	ID   uuid.UUID
	Role domain.Role
}

// WithAuthUser returns a context carrying the authenticated user.
func WithAuthUser(ctx context.Context, user AuthenticatedUser) context.Context {
	return context.WithValue(ctx, AuthUserContextKey, user)
}

// AuthUserFrom extracts the authenticated user from the context.
func AuthUserFrom(ctx context.Context) (AuthenticatedUser, bool) {
	user, ok := ctx.Value(AuthUserContextKey).(AuthenticatedUser)
	return user, ok
}

// SetTraceID adds a trace ID to the context for correlating logs and
// error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if unset.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID. If crypto/rand fails it
// falls back to a time-based value rather than a static one.
func generateTraceID() string {
	b := make([]byte, traceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != traceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n)

		now := time.Now()
		binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
		binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
		binary.BigEndian.PutUint32(b[12:16], uint32(now.Unix()))
	}

	return hex.EncodeToString(b)
}

package storage

import (
	"context"

	"github.com/JaimeStill/backoffice/pkg/lifecycle"
)

// System holds staged upload bytes by key. Keys are slash-separated paths
// relative to the store; empty, absolute, and escaping keys fail with
// ErrInvalidKey. Every operation fails fast once ctx is done.
type System interface {
	// Store creates or replaces key.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns ErrNotFound for a missing key.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// Purge removes every key beneath prefix, such as one session's uploads.
	Purge(ctx context.Context, prefix string) error

	Start(lc *lifecycle.Coordinator) error
}

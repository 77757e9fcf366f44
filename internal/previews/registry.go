// Package previews issues short-lived URLs for staged files so a form can
// display them before they are submitted.
package previews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/backoffice/pkg/assets"
	"github.com/JaimeStill/backoffice/pkg/storage"
)

// Prefix is the path under which preview handles are served.
const Prefix = "/previews"

type entry struct {
	key         string
	name        string
	contentType string
}

// Registry maps preview handles to staged blobs. It implements
// assets.Previewer and is safe for concurrent use.
type Registry struct {
	store  storage.System
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty registry backed by store.
func NewRegistry(store storage.System, logger *slog.Logger) *Registry {
	return &Registry{
		store:   store,
		logger:  logger.With("system", "previews"),
		entries: make(map[string]entry),
	}
}

// Acquire registers f and returns the URL path that serves it.
func (r *Registry) Acquire(f assets.File) string {
	handle := uuid.NewString()

	r.mu.Lock()
	r.entries[handle] = entry{key: f.Key, name: f.Name, contentType: f.ContentType}
	r.mu.Unlock()

	return Prefix + "/" + handle
}

// Revoke forgets a handle previously returned by Acquire. Unknown handles are ignored.
func (r *Registry) Revoke(handle string) {
	id := strings.TrimPrefix(handle, Prefix+"/")

	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Content is the payload behind a live handle.
type Content struct {
	Name        string
	ContentType string
	Data        []byte
}

// Open returns the bytes behind handle, or ErrNotFound when the handle is
// unknown or has been revoked.
func (r *Registry) Open(ctx context.Context, handle string) (*Content, error) {
	r.mu.RLock()
	e, ok := r.entries[handle]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	data, err := r.store.Retrieve(ctx, e.key)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s: %w", e.key, err)
	}

	return &Content{Name: e.name, ContentType: e.contentType, Data: data}, nil
}

package archive

import (
	"context"
	"io"
)

// Object describes a stored object.
type Object struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
}

// Storage interface for different backends.
type Storage interface {
	// Put writes body under key, replacing any existing object.
	// size may be -1 when unknown.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Object, error)
	// Exists checks if an object exists.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for an object.
	URL(key string) string
}

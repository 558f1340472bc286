package model

import (
	"context"
	"io"
)

// Storage stores binary objects such as avatars.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	// KeyFromURL reverses URL. It reports false for addresses it did not produce.
	KeyFromURL(url string) (string, bool)
}

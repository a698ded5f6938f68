// Package objstore abstracts binary object storage for uploaded audit images.
package objstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("objstore: object not found")

// Object is a stored blob with its media type.
type Object struct {
	Data        []byte
	ContentType string
}

// Store persists and retrieves binary objects by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
}

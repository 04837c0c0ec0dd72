// Package blob abstracts the external object store holding uploaded video
// bytes. The orchestration core only needs "put bytes at key" and
// "produce a fetchable URL for key".
package blob

import "context"

// Store is the minimal blob-store surface used by the services.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	PresignGet(ctx context.Context, key string) (string, error)
}

package storage

import "context"

// ImageStore turns an in-memory image payload into a publicly retrievable URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

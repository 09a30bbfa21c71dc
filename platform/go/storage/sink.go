package storage

import "context"

// Sink receives exported artifacts (monthly archive workbooks).
type Sink interface {
	// Write stores data under the given key, overwriting any prior object.
	Write(ctx context.Context, key string, data []byte) error
}

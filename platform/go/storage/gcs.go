package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSSink writes exports into a GCS bucket.
type GCSSink struct {
	client *storage.Client
	bucket string
}

// NewGCSSink constructs a GCSSink.
func NewGCSSink(client *storage.Client, bucket string) *GCSSink {
	if client == nil {
		panic("gcs sink requires client")
	}
	if bucket == "" {
		panic("gcs sink requires bucket")
	}
	return &GCSSink{client: client, bucket: bucket}
}

func (s *GCSSink) Write(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("object key is required")
	}

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize object %q: %w", key, err)
	}
	return nil
}

var _ Sink = (*GCSSink)(nil)

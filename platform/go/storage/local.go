package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSink writes exports under a base directory on the local filesystem.
type LocalSink struct {
	basePath string
}

// NewLocalSink constructs a LocalSink.
func NewLocalSink(basePath string) *LocalSink {
	if basePath == "" {
		panic("local sink requires basePath")
	}
	return &LocalSink{basePath: basePath}
}

func (s *LocalSink) Write(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("object key is required")
	}

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("write export %q: %w", key, err)
	}
	return nil
}

var _ Sink = (*LocalSink)(nil)

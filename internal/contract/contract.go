// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/confcast/internal/source"
	"github.com/stretchr/testify/mock"
)

// ResourceReader fetches schema and dump resources by path or URL.
// This allows the pipeline to be tested without touching buckets.
type ResourceReader interface {
	// ReadAll returns the decompressed contents of the resource.
	ReadAll(ctx context.Context, location string) ([]byte, error)
}

// BlobReader reads local files and s3://, gs:// or file:// objects.
type BlobReader struct{}

var _ ResourceReader = BlobReader{} // Compile-time check

// NewBlobReader returns the default resource reader.
func NewBlobReader() BlobReader { return BlobReader{} }

// ReadAll implements ResourceReader.
func (BlobReader) ReadAll(ctx context.Context, location string) ([]byte, error) {
	return source.ReadAll(ctx, location)
}

// MockResourceReader is a testify mock of ResourceReader.
type MockResourceReader struct {
	mock.Mock
}

var _ ResourceReader = &MockResourceReader{} // Compile-time check

// ReadAll implements ResourceReader.
func (m *MockResourceReader) ReadAll(ctx context.Context, location string) ([]byte, error) {
	args := m.Called(ctx, location)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

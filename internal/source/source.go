// Package source opens schema and dump resources from local paths or bucket
// URLs and undoes their compression.
package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob" // GCS driver
	_ "gocloud.dev/blob/s3blob"  // S3 driver
	"gocloud.dev/gcerrors"
)

// Location splits a resource into the bucket holding it and its key.
type Location struct {
	BucketURL string // empty for local paths
	Dir       string // local directory when BucketURL is empty
	Key       string
}

// ParseLocation accepts a local path or a file://, s3:// or gs:// URL.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("empty location")
	}
	if !strings.Contains(raw, "://") {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return Location{}, err
		}
		return Location{Dir: filepath.Dir(abs), Key: filepath.Base(abs)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %s: %w", raw, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme == "file" {
		dir, base := path.Split(u.Path)
		key = base
		u.Path = strings.TrimSuffix(dir, "/")
	} else {
		u.Path = ""
	}
	if key == "" {
		return Location{}, fmt.Errorf("location %s has no object key", raw)
	}
	return Location{BucketURL: u.String(), Key: key}, nil
}

// String renders the location for logs.
func (l Location) String() string {
	if l.BucketURL == "" {
		return filepath.Join(l.Dir, l.Key)
	}
	return l.BucketURL + " " + l.Key
}

// bucket opens the bucket holding the location.
func (l Location) bucket(ctx context.Context) (*blob.Bucket, error) {
	if l.BucketURL == "" {
		return fileblob.OpenBucket(l.Dir, nil)
	}
	return blob.OpenBucket(ctx, l.BucketURL)
}

// ReadAll reads the resource at raw and decompresses it when it carries a
// gzip or zstd header.
func ReadAll(ctx context.Context, raw string) ([]byte, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	b, err := loc.bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("open bucket for %s: %w", loc, err)
	}
	defer func() { _ = b.Close() }()

	data, err := b.ReadAll(ctx, loc.Key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%s: %w", raw, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	return Decompress(data)
}

// OpenDir opens a local directory or bucket URL as a bucket. create makes a
// missing local directory. Local buckets never write attribute sidecar files.
func OpenDir(ctx context.Context, raw string, create bool) (*blob.Bucket, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty location")
	}
	if strings.Contains(raw, "://") {
		return blob.OpenBucket(ctx, raw)
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, err
	}
	return fileblob.OpenBucket(abs, &fileblob.Options{
		CreateDir: create,
		Metadata:  fileblob.MetadataDontWrite,
	})
}

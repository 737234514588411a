package aasablob

import (
	"context"
	"fmt"
	"os"

	"github.com/frantjc/aasa"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// ReadFile reads and decodes the aasa.File at key in bucket. Its
// format is determined by key's extension.
func ReadFile(ctx context.Context, bucket *blob.Bucket, key string) (*aasa.File, error) {
	contentType := aasa.ContentTypeFromName(key)
	if contentType == "" {
		return nil, fmt.Errorf("%w: %s", aasa.ErrUnsupportedMediaType, key)
	}

	rc, err := bucket.NewReader(ctx, key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, fmt.Errorf("open %s: %w", key, os.ErrNotExist)
	} else if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	defer rc.Close()

	return aasa.DecodeFile(rc, contentType)
}

// Load reads the aasa.File named name. If bucketURL is empty, name is a path on
// the local filesystem. Otherwise, it is a key in the bucket opened from bucketURL.
// An empty name yields an empty aasa.File.
func Load(ctx context.Context, bucketURL, name string) (*aasa.File, error) {
	if name == "" {
		return &aasa.File{}, nil
	}

	if bucketURL == "" {
		contentType := aasa.ContentTypeFromName(name)
		if contentType == "" {
			return nil, fmt.Errorf("%w: %s", aasa.ErrUnsupportedMediaType, name)
		}

		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return aasa.DecodeFile(f, contentType)
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	defer bucket.Close()

	return ReadFile(ctx, bucket, name)
}

// Package storage abstracts dataset/model path resolution over the
// local filesystem and Google Cloud Storage, so CSV ingestion and model
// I/O can treat a "gs://bucket/object" path the same way as a local
// file path.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// Store reads and writes a single logical object addressed by path.
type Store interface {
	Reader(ctx context.Context, path string) (io.ReadCloser, error)
	Writer(ctx context.Context, path string) (io.WriteCloser, error)
}

// Resolve returns the Store implementation appropriate for path: GCS
// for a "gs://" URL, the local filesystem otherwise.
func Resolve(path string) Store {
	if strings.HasPrefix(path, "gs://") {
		return gcsStore{}
	}
	return localStore{}
}

type localStore struct{}

func (localStore) Reader(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}
	return f, nil
}

func (localStore) Writer(_ context.Context, path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", path, err)
	}
	return f, nil
}

type gcsStore struct{}

// splitGSPath splits "gs://bucket/object/path" into its bucket and
// object components.
func splitGSPath(path string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(path, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("storage: malformed gs:// path %q", path)
	}
	return parts[0], parts[1], nil
}

func (gcsStore) Reader(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, err := splitGSPath(path)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: creating GCS client: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: opening gs://%s/%s: %w", bucket, object, err)
	}
	return closerPair{ReadCloser: r, extra: client}, nil
}

func (gcsStore) Writer(ctx context.Context, path string) (io.WriteCloser, error) {
	bucket, object, err := splitGSPath(path)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: creating GCS client: %w", err)
	}
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	return writerPair{WriteCloser: w, extra: client}, nil
}

// closerPair closes both the object reader and the client that created
// it, so every GCS handle opened by this package is fully released.
type closerPair struct {
	io.ReadCloser
	extra io.Closer
}

func (c closerPair) Close() error {
	err := c.ReadCloser.Close()
	if cerr := c.extra.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

type writerPair struct {
	io.WriteCloser
	extra io.Closer
}

func (w writerPair) Close() error {
	err := w.WriteCloser.Close()
	if cerr := w.extra.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

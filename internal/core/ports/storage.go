package ports

import (
	"context"
	"io"
)

// FileStorage abstracts the hosted file-storage backend. Upload overwrites
// any existing object under the same key when overwrite is set and returns
// the public URL of the stored file.
type FileStorage interface {
	Upload(ctx context.Context, bucket, key string, file io.Reader, overwrite bool) (string, error)
	PublicURL(bucket, key string) string
}

// Package filesystem abstracts where screenshot files live: local disk for
// development, S3 in deployed environments.
package filesystem

import (
	"context"
	"io"
)

type Storage interface {
	// Save writes the content under key, creating parents as needed.
	Save(ctx context.Context, key string, r io.Reader) error
	// Read streams the content stored under key to w.
	Read(ctx context.Context, key string, w io.Writer) error
}

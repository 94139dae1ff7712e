package storage

import (
	"context"
	"io"
)

// Storage persists uploaded files and returns a public URL for each. Notes
// and quiz images both go through this; which backend is used is a deployment
// decision made in config.
type Storage interface {
	Upload(ctx context.Context, key string, r io.Reader) (publicURL string, err error)
}

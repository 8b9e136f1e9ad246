// Package storage holds the profile picture stores. Pictures are the
// only binary objects this service keeps, everything else lives in the
// relational store
package storage

import (
	"context"
	"io"
)

// Store saves an object under key and returns the URL it will be
// reachable at
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// Package metadata is a small key/value store in the kiosk database. It
// holds the last grid loaded from the backend.
package metadata

import (
	"context"
	"errors"
)

// Key names one stored value. Only the keys declared here are accepted.
type Key string

const (
	KeyGridUsers Key = "grid.users"
	KeyGridTiles Key = "grid.tiles"
)

// ErrUnknownKey is returned for a Key not declared in this package.
var ErrUnknownKey = errors.New("unknown metadata key")

func (k Key) valid() bool {
	switch k {
	case KeyGridUsers, KeyGridTiles:
		return true
	}
	return false
}

// Repository stores raw values by Key.
type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

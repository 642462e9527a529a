package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage: backend closed")

// KeyValue is the origin-scoped storage the widget state lives in.
// Values are opaque strings; the lead store keeps JSON in them.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

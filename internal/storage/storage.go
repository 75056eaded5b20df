// Package storage holds the key-value backends for saved workout templates.
// Every backend satisfies repository.KeyValueStore.
package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var (
	ErrEmptyKey           = errors.New("storage key must not be empty")
	ErrPresignUnsupported = errors.New("template backend does not support download links")
	ErrValueTooLarge      = errors.New("value is too large for the template store")
)

// Presigner is implemented by backends that can hand out temporary download links.
type Presigner interface {
	PresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

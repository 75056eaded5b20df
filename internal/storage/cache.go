package storage

import (
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const defaultCacheSizeMB = 8

// CacheStore keeps values in a process-local freecache. Entries may be
// evicted when the cache fills up, so it only fronts a durable backend.
type CacheStore struct {
	cache *freecache.Cache
}

func NewCacheStore(sizeMB int) *CacheStore {
	if sizeMB <= 0 {
		sizeMB = defaultCacheSizeMB
	}
	return &CacheStore{cache: freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (c *CacheStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	value, err := c.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *CacheStore) Save(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := c.cache.Set([]byte(key), value, 0)
	if errors.Is(err, freecache.ErrLargeEntry) {
		return fmt.Errorf("%w: %q is %d bytes", ErrValueTooLarge, key, len(value))
	}
	return err
}

// CachedStore reads through a CacheStore in front of a slower backend.
// Writes go to the backend first; the cache only mirrors successful saves.
type CachedStore struct {
	backend repository.KeyValueStore
	cache   *CacheStore
}

func NewCachedStore(backend repository.KeyValueStore, sizeMB int) *CachedStore {
	return &CachedStore{backend: backend, cache: NewCacheStore(sizeMB)}
}

func (c *CachedStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if value, ok, err := c.cache.Load(ctx, key); err == nil && ok {
		return value, true, nil
	}
	value, ok, err := c.backend.Load(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	if err := c.cache.Save(ctx, key, value); err != nil {
		log.Debugf("storage: not caching %q: %v", key, err)
	}
	return value, true, nil
}

func (c *CachedStore) Save(ctx context.Context, key string, value []byte) error {
	if err := c.backend.Save(ctx, key, value); err != nil {
		return err
	}
	if err := c.cache.Save(ctx, key, value); err != nil {
		log.Debugf("storage: not caching %q: %v", key, err)
	}
	return nil
}

// PresignedDownloadURL passes through when the backend supports it.
func (c *CachedStore) PresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	p, ok := c.backend.(Presigner)
	if !ok {
		return "", ErrPresignUnsupported
	}
	return p.PresignedDownloadURL(ctx, key, expires)
}

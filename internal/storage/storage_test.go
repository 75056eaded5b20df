package storage

import (
	"alcyxob/trainer-dashboard/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStore(t *testing.T) {
	ctx := context.Background()
	c := NewCacheStore(1)

	_, found, err := c.Load(ctx, "templates/a")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Save(ctx, "templates/a", []byte(`{"id":"a"}`)))
	v, found, err := c.Load(ctx, "templates/a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"a"}`, string(v))

	assert.ErrorIs(t, c.Save(ctx, "", nil), ErrEmptyKey)
	assert.ErrorIs(t, c.Save(ctx, "templates/big", make([]byte, 4096)), ErrValueTooLarge)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, found, err := m.Load(ctx, "templates/index")
	require.NoError(t, err)
	assert.False(t, found)

	// Far beyond anything a freecache entry would accept.
	big := make([]byte, 4<<20)
	big[0] = 'x'
	require.NoError(t, m.Save(ctx, "templates/index", big))
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Save(ctx, fmt.Sprintf("templates/%d", i), []byte(`{}`)))
	}

	v, found, err := m.Load(ctx, "templates/index")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, v, len(big))
	v[0] = 'y'
	again, _, _ := m.Load(ctx, "templates/index")
	assert.Equal(t, byte('x'), again[0], "loaded values are copies")

	assert.ErrorIs(t, m.Save(ctx, "", nil), ErrEmptyKey)
	_, _, err = m.Load(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

type countingStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	loads int
	fail  error
}

func (s *countingStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *countingStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.data[key] = value
	return nil
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{data: map[string][]byte{"k": []byte("v")}}
	c := NewCachedStore(backend, 1)

	for i := 0; i < 3; i++ {
		v, found, err := c.Load(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "v", string(v))
	}
	assert.Equal(t, 1, backend.loads)

	_, found, err := c.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCachedStore_SaveFailureNotCached(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{data: map[string][]byte{}, fail: errors.New("backend down")}
	c := NewCachedStore(backend, 1)

	require.Error(t, c.Save(ctx, "k", []byte("v")))
	_, found, err := c.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = c.PresignedDownloadURL(ctx, "k", 0)
	assert.ErrorIs(t, err, ErrPresignUnsupported)
}

// fakeS3 answers path-style GET and PUT object requests.
func fakeS3(t *testing.T, objects map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			body, ok := objects[r.URL.Path]
			if !ok {
				w.Header().Set("Content-Type", "application/xml")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		case http.MethodPut:
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func newTestS3Store(t *testing.T, endpoint string) *S3Store {
	t.Helper()
	store, err := NewS3Store(context.Background(), config.S3Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      "plans",
		Prefix:          "dash/",
	})
	require.NoError(t, err)
	return store
}

func TestS3Store_Load(t *testing.T) {
	srv, seen := fakeS3(t, map[string]string{"/plans/dash/templates/a": `{"id":"a"}`})
	store := newTestS3Store(t, srv.URL)
	ctx := context.Background()

	v, found, err := store.Load(ctx, "templates/a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"a"}`, string(v))

	_, found, err = store.Load(ctx, "templates/missing")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Contains(t, *seen, "GET /plans/dash/templates/a")
}

func TestS3Store_Save(t *testing.T) {
	srv, seen := fakeS3(t, nil)
	store := newTestS3Store(t, srv.URL)

	require.NoError(t, store.Save(context.Background(), "templates/index", []byte(`["a"]`)))
	assert.Contains(t, *seen, "PUT /plans/dash/templates/index")
}

func TestS3Store_PresignedDownloadURL(t *testing.T) {
	store := newTestS3Store(t, "http://minio.local:9000")
	url, err := store.PresignedDownloadURL(context.Background(), "templates/a", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://minio.local:9000/plans/dash/templates/a?"), url)
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://s3.example.com", endpointURL("s3.example.com", true))
	assert.Equal(t, "http://localhost:9000", endpointURL("localhost:9000", false))
	assert.Equal(t, "http://x:1", endpointURL("http://x:1", true))
}

package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 accepts every request and remembers uploaded bodies by path.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	methods []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.methods = append(f.methods, r.Method)
	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
	}
	w.WriteHeader(http.StatusOK)
}

func TestS3Storage(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	server := httptest.NewServer(fake)
	defer server.Close()

	ctx := context.Background()
	s, err := NewS3Storage(ctx, S3Config{
		Region:    "us-east-1",
		Bucket:    "folio",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  server.URL,
	})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "abc.png", strings.NewReader("png-bytes")))
	assert.Contains(t, fake.objects["/folio/abc.png"], "png-bytes")

	// Stored in pages and rows, so it must never expire
	url := s.URL("abc.png")
	assert.Equal(t, server.URL+"/folio/abc.png", url)
	assert.NotContains(t, url, "X-Amz-")

	assert.Contains(t, fake.methods, http.MethodHead)
}

func TestS3Storage_PublicURL(t *testing.T) {
	server := httptest.NewServer(&fakeS3{objects: map[string]string{}})
	defer server.Close()

	s, err := NewS3Storage(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "folio",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  server.URL,
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/abc.png", s.URL("abc.png"))
}

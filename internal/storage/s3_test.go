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

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		if r.URL.Path == "/rosters" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T, bucket string) (*S3Store, *fakeS3, string) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), Config{
		Bucket:          bucket,
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
	})
	require.NoError(t, err)
	return store, fake, srv.URL
}

func TestUploadStoresObject(t *testing.T) {
	store, fake, base := newStore(t, "rosters")

	url, err := store.Upload(context.Background(), "candidates", "list.csv", "text/csv", []byte("Name,Email\n"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, base+"/rosters/candidates/"), url)
	assert.True(t, strings.HasSuffix(url, "-list.csv"), url)

	require.Len(t, fake.objects, 1)
	for path, body := range fake.objects {
		assert.True(t, strings.HasPrefix(path, "/rosters/candidates/"))
		assert.Equal(t, "Name,Email\n", string(body))
		assert.Equal(t, "text/csv", fake.types[path])
	}
}

func TestPing(t *testing.T) {
	store, _, _ := newStore(t, "rosters")
	assert.NoError(t, store.Ping(context.Background()))

	missing, _, _ := newStore(t, "missing")
	assert.Error(t, missing.Ping(context.Background()))
}

func TestObjectKeyStripsDirectories(t *testing.T) {
	key := objectKey("profile-pictures", `..\..\evil/avatar.png`)
	assert.True(t, strings.HasPrefix(key, "profile-pictures/"))
	assert.True(t, strings.HasSuffix(key, "-avatar.png"))
	assert.NotContains(t, key, "..")
}

func TestObjectURL(t *testing.T) {
	s := &S3Store{cfg: Config{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/a/x%20y.png", s.objectURL("a/x y.png"))

	s.cfg.PublicBaseURL = "https://cdn.voxhire.io"
	assert.Equal(t, "https://cdn.voxhire.io/a/x.png", s.objectURL("a/x.png"))
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), Config{Region: "us-east-1"})
	assert.Error(t, err)
}

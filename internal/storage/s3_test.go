package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "snapshots-bucket"

// fakeS3 serves path-style object and ListObjectsV2 requests from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2" {
		f.list(w, r.URL.Query().Get("prefix"))
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.puts++
		w.Header().Set("ETag", fmt.Sprintf(`"etag-%d"`, f.puts))
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		body, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Header().Set("ETag", `"head-etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) list(w http.ResponseWriter, prefix string) {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><KeyCount>%d</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>", testBucket, prefix, len(keys))
	for _, k := range keys {
		fmt.Fprintf(&b, `<Contents><Key>%s</Key><Size>%d</Size><ETag>"e"</ETag><LastModified>2026-01-01T00:00:00.000Z</LastModified></Contents>`, k, len(f.objects[k]))
	}
	b.WriteString("</ListBucketResult>")

	w.Header().Set("Content-Type", "application/xml")
	_, _ = io.WriteString(w, b.String())
}

func newFakeS3Storage(t *testing.T) *S3Storage {
	t.Helper()
	srv := httptest.NewServer(&fakeS3{objects: make(map[string][]byte)})
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},

		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})
	cfg := DefaultS3Config()
	cfg.MaxRetries = 0
	return NewS3StorageWithClient(client, testBucket, cfg)
}

func TestS3Storage_PutGet(t *testing.T) {
	store := newFakeS3Storage(t)
	ctx := context.Background()

	etag := put(t, store, "snapshots/1_0/data.snappy", "snapshot bytes")
	assert.Equal(t, "etag-1", etag, "etag should be unquoted")
	assert.Equal(t, "snapshot bytes", read(t, store, "snapshots/1_0/data.snappy"))

	info, err := store.Stat(ctx, "snapshots/1_0/data.snappy")
	require.NoError(t, err)
	assert.Equal(t, int64(len("snapshot bytes")), info.Size)
	assert.Equal(t, "head-etag", info.ETag)

	require.NoError(t, store.Delete(ctx, "snapshots/1_0/data.snappy"))
	_, err = store.Stat(ctx, "snapshots/1_0/data.snappy")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3Storage_Missing(t *testing.T) {
	store := newFakeS3Storage(t)
	ctx := context.Background()

	_, err := store.Stat(ctx, "snapshots/9_9/meta.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = store.Get(ctx, "snapshots/9_9/meta.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3Storage_List(t *testing.T) {
	store := newFakeS3Storage(t)

	put(t, store, "snapshots/1_0/meta.json", "{}")
	put(t, store, "snapshots/1_0/data.snappy", "xyz")
	put(t, store, "snapshots/2_0/meta.json", "{}")

	objects, err := store.List(context.Background(), "snapshots/1_0/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "snapshots/1_0/data.snappy", objects[0].Path)
	assert.Equal(t, int64(3), objects[0].Size)
	assert.Equal(t, "e", objects[0].ETag)
	assert.Equal(t, "snapshots/1_0/meta.json", objects[1].Path)
}

func TestNewS3StorageWithClient_ClampsConfig(t *testing.T) {
	s := NewS3StorageWithClient(nil, testBucket, S3Config{PartSize: 1, MaxRetries: -2})
	assert.Equal(t, int64(minPartSize), s.cfg.PartSize)
	assert.Equal(t, 0, s.cfg.MaxRetries)
}

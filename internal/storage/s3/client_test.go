package s3_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/config"
	"docfill/internal/domain"
	"docfill/internal/port"
	"docfill/internal/storage/s3"
)

type recorded struct {
	method string
	path   string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func newClient(t *testing.T, endpoint string) port.ObjectStorage {
	t.Helper()
	client, err := s3.NewS3Client(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Bucket:    "docfill-test",
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return client
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := s3.NewS3Client(context.Background(), &config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestPut(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusOK)
	client := newClient(t, srv.URL)

	out, err := client.Put(context.Background(), port.PutInput{
		Key:         "extractions/run/passport.png",
		Body:        strings.NewReader("png"),
		ContentType: "image/png",
		Size:        3,
	})

	require.NoError(t, err)
	assert.Equal(t, "extractions/run/passport.png", out.Key)
	require.NotEmpty(t, *reqs)
	assert.Equal(t, http.MethodPut, (*reqs)[0].method)
	assert.Equal(t, "/docfill-test/extractions/run/passport.png", (*reqs)[0].path)
}

func TestPut_FailureWrapsUploadError(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusForbidden)
	client := newClient(t, srv.URL)

	_, err := client.Put(context.Background(), port.PutInput{Key: "k", Body: strings.NewReader("x"), ContentType: "text/plain"})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestDelete(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusNoContent)
	client := newClient(t, srv.URL)

	require.NoError(t, client.Delete(context.Background(), "screenshots/a.png"))
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/docfill-test/screenshots/a.png", (*reqs)[0].path)
}

func TestPresignGet(t *testing.T) {
	client := newClient(t, "http://localhost:9000")

	url, err := client.PresignGet(context.Background(), "screenshots/a.png", 300)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/docfill-test/screenshots/a.png?"))
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Contains(t, url, "X-Amz-Signature=")
}

package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempImage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cat.jpg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUploadFileReturnsHostedURL(t *testing.T) {
	var gotKey string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		f, _, err := r.FormFile("image")
		require.NoError(t, err)
		gotBody, _ = io.ReadAll(f)
		w.Write([]byte(`{"data":{"url":"https://i.ibb.co/abc/cat.jpg"},"success":true}`))
	}))
	defer srv.Close()

	c := &Client{APIKey: "test-key", Endpoint: srv.URL}
	url, err := c.UploadFile(context.Background(), writeTempImage(t, "jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/abc/cat.jpg", url)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "jpeg-bytes", string(gotBody))
}

func TestUploadFileRejectedByHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := &Client{APIKey: "k", Endpoint: srv.URL}
	_, err := c.UploadFile(context.Background(), writeTempImage(t, "x"))
	assert.ErrorContains(t, err, "status 400")
}

func TestUploadFileNoURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":{},"success":true}`))
	}))
	defer srv.Close()

	c := &Client{APIKey: "k", Endpoint: srv.URL}
	_, err := c.UploadFile(context.Background(), writeTempImage(t, "x"))
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestUploadFileMissingFile(t *testing.T) {
	c := &Client{APIKey: "k"}
	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorContains(t, err, "open image")
}

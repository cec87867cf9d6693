package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-marketplace/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMediaRouter(t *testing.T) (*gin.Engine, []byte) {
	t.Helper()
	objects := storage.NewMemoryStore()
	payload := bytes.Repeat([]byte("0123456789"), 100)
	require.NoError(t, objects.Put(context.Background(), "hotel-videos", "merchant-1/20240101/tour.mp4",
		bytes.NewReader(payload), int64(len(payload)), "video/mp4"))

	r := gin.New()
	r.GET("/api/media/:bucket/*object", NewMediaController(objects).Stream)
	return r, payload
}

func doGet(r http.Handler, path, rangeHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const videoPath = "/api/media/hotel-videos/merchant-1/20240101/tour.mp4"

func TestMediaFullObject(t *testing.T) {
	r, payload := newMediaRouter(t)
	w := doGet(r, videoPath, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, w.Body.Bytes())
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))
}

func TestMediaSingleByteRange(t *testing.T) {
	r, payload := newMediaRouter(t)
	w := doGet(r, videoPath, "bytes=0-0")

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 0-0/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, 1, w.Body.Len())
	assert.Equal(t, payload[:1], w.Body.Bytes())
}

func TestMediaRangeClampsEnd(t *testing.T) {
	r, payload := newMediaRouter(t)
	w := doGet(r, videoPath, "bytes=990-5000")

	require.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 990-999/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, payload[990:], w.Body.Bytes())
}

func TestMediaUnsatisfiableRange(t *testing.T) {
	r, _ := newMediaRouter(t)
	for _, h := range []string{"bytes=500-100", "bytes=1000-", "bytes=-10"} {
		w := doGet(r, videoPath, h)
		assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code, h)
		assert.Equal(t, "bytes */1000", w.Header().Get("Content-Range"), h)
	}
}

func TestMediaMultiRangeServesFullObject(t *testing.T) {
	r, payload := newMediaRouter(t)
	w := doGet(r, videoPath, "bytes=0-1,4-5")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Body.Bytes(), len(payload))
}

func TestMediaMissingObject(t *testing.T) {
	r, _ := newMediaRouter(t)
	w := doGet(r, "/api/media/hotel-videos/nope.mp4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

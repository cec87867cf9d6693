package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNilCacheIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var rc *ResponseCache
	hits := 0
	r := gin.New()
	r.GET("/list", rc.Middleware(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"n": hits})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, hits)
	assert.NoError(t, rc.Purge(context.Background()))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	rc := NewResponseCache(nil, 0, "hotel:cache")
	a := rc.key(httptest.NewRequest(http.MethodGet, "/api/hotel/list?city=shanghai", nil))
	b := rc.key(httptest.NewRequest(http.MethodGet, "/api/hotel/list?city=hangzhou", nil))
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "hotel:cache:")
}

// Package storage wraps the bucket-based object store that holds hotel media.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"
)

// ErrObjectNotFound is returned by Stat and Open for a missing object.
var ErrObjectNotFound = errors.New("object not found")

// MediaPathPrefix is the API path under which objects are proxied.
const MediaPathPrefix = "/api/media/"

type ObjectInfo struct {
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// ObjectStore is the subset of object storage the API needs.
type ObjectStore interface {
	Stat(ctx context.Context, bucket, name string) (ObjectInfo, error)
	// Open reads [start, end] inclusive; end < 0 reads to the end of the object.
	Open(ctx context.Context, bucket, name string, start, end int64) (io.ReadCloser, error)
	Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, bucket, name string) error
}

// MediaURL builds the proxied URL for an object, escaping each path segment.
func MediaURL(bucket, name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return MediaPathPrefix + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// ParseMediaURL extracts bucket and object name from a URL produced by
// MediaURL. Absolute URLs are accepted as long as the path carries the
// media prefix; anything else reports ok=false.
func ParseMediaURL(raw string) (bucket, name string, ok bool) {
	raw = strings.TrimSpace(raw)
	idx := strings.Index(raw, MediaPathPrefix)
	if idx < 0 {
		return "", "", false
	}
	rest := raw[idx+len(MediaPathPrefix):]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		rest = rest[:q]
	}
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", false
	}
	b, err := url.PathUnescape(rest[:slash])
	if err != nil {
		return "", "", false
	}
	n, err := url.PathUnescape(rest[slash+1:])
	if err != nil {
		return "", "", false
	}
	return b, n, true
}

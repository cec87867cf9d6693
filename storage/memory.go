package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

type memObject struct {
	data        []byte
	contentType string
	etag        string
	modified    time.Time
}

// MemoryStore is an in-process ObjectStore used in local runs and tests.
// RemoveErr, when set, is returned by Remove for that bucket/name key.
type MemoryStore struct {
	mu        sync.Mutex
	objects   map[string]memObject
	RemoveErr map[string]error
	Removed   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]memObject{}, RemoveErr: map[string]error{}}
}

func memKey(bucket, name string) string { return bucket + "/" + name }

func (s *MemoryStore) Stat(_ context.Context, bucket, name string) (ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[memKey(bucket, name)]
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return ObjectInfo{
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		ETag:         obj.etag,
		LastModified: obj.modified,
	}, nil
}

func (s *MemoryStore) Open(_ context.Context, bucket, name string, start, end int64) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[memKey(bucket, name)]
	if !ok {
		return nil, ErrObjectNotFound
	}
	size := int64(len(obj.data))
	if end < 0 || end >= size {
		end = size - 1
	}
	if start < 0 || start > end+1 {
		return nil, fmt.Errorf("invalid range %d-%d", start, end)
	}
	return io.NopCloser(bytes.NewReader(obj.data[start : end+1])), nil
}

func (s *MemoryStore) Put(_ context.Context, bucket, name string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	sum := md5.Sum(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[memKey(bucket, name)] = memObject{
		data:        data,
		contentType: contentType,
		etag:        hex.EncodeToString(sum[:]),
		modified:    time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, bucket, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memKey(bucket, name)
	if err := s.RemoveErr[key]; err != nil {
		return err
	}
	delete(s.objects, key)
	s.Removed = append(s.Removed, key)
	return nil
}

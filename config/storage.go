package config

import (
	"context"
	"time"

	"hotel-marketplace/storage"
)

// NewObjectStore connects to MinIO and makes sure the media buckets exist.
func NewObjectStore(c MinIOConfig) (*storage.MinioStore, error) {
	store, err := storage.NewMinioStore(c.Endpoint, c.AccessKey, c.SecretKey, c.UseSSL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store.EnsureBuckets(ctx, c.ImageBucket, c.VideoBucket)
	return store, nil
}

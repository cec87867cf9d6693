package storage

import (
	"context"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MinioStore implements ObjectStore on an S3-compatible MinIO endpoint.
type MinioStore struct {
	client *minio.Client
}

func NewMinioStore(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}
	return &MinioStore{client: client}, nil
}

// EnsureBuckets creates missing buckets. Failures are logged so the API can
// still start when the object store is temporarily down.
func (s *MinioStore) EnsureBuckets(ctx context.Context, buckets ...string) {
	for _, b := range buckets {
		exists, err := s.client.BucketExists(ctx, b)
		if err != nil {
			zap.L().Warn("bucket check failed", zap.String("bucket", b), zap.Error(err))
			continue
		}
		if exists {
			continue
		}
		if err := s.client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			zap.L().Warn("bucket create failed", zap.String("bucket", b), zap.Error(err))
			continue
		}
		zap.L().Info("bucket created", zap.String("bucket", b))
	}
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound
}

func (s *MinioStore) Stat(ctx context.Context, bucket, name string) (ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return ObjectInfo{}, ErrObjectNotFound
		}
		return ObjectInfo{}, errors.Wrapf(err, "stat %s/%s", bucket, name)
	}
	return ObjectInfo{
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

func (s *MinioStore) Open(ctx context.Context, bucket, name string, start, end int64) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if end >= 0 {
		if err := opts.SetRange(start, end); err != nil {
			return nil, errors.Wrap(err, "set range")
		}
	}
	obj, err := s.client.GetObject(ctx, bucket, name, opts)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, errors.Wrapf(err, "get %s/%s", bucket, name)
	}
	return obj, nil
}

func (s *MinioStore) Put(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	return errors.Wrapf(err, "put %s/%s", bucket, name)
}

func (s *MinioStore) Remove(ctx context.Context, bucket, name string) error {
	err := s.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{})
	return errors.Wrapf(err, "remove %s/%s", bucket, name)
}

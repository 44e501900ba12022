package utils

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const photoPrefix = "img/"

// PhotoStore puts ship photos into a single MinIO bucket.
type PhotoStore struct {
	client *minio.Client
	bucket string
}

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}

// NewPhotoStore creates the bucket when it does not exist yet.
func NewPhotoStore(ctx context.Context, client *minio.Client, bucket string) (*PhotoStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		logrus.Infof("minio bucket %s created", bucket)
	}
	return &PhotoStore{client: client, bucket: bucket}, nil
}

// Upload stores the file under a fresh name and returns that name.
func (s *PhotoStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	name := PhotoObjectName(filename)
	_, err := s.client.PutObject(ctx, s.bucket, photoPrefix+name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (s *PhotoStore) Remove(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, photoPrefix+path.Base(name), minio.RemoveObjectOptions{})
}

// PhotoObjectName keeps the extension of the uploaded file and replaces the
// rest with a uuid.
func PhotoObjectName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}

package s3

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage provides an S3-compatible storage backend using MinIO.
// Output directories are mapped to object key prefixes inside one bucket.
type Storage struct {
	client     *minio.Client
	bucketName string
}

// Options holds the connection settings of the bucket processed images go to.
type Options struct {
	Endpoint   string // host:port, without scheme
	AccessKey  string
	SecretKey  string
	BucketName string
	Region     string // empty lets the client look the region up
	UseSSL     bool
}

// NewStorage connects to opts.Endpoint and makes sure the bucket exists,
// creating it when missing.
func NewStorage(ctx context.Context, opts Options) (*Storage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket %s exists: %w", opts.BucketName, err)
	}

	if !exists {
		err := client.MakeBucket(ctx, opts.BucketName, minio.MakeBucketOptions{Region: opts.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.BucketName, err)
		}
	}

	return &Storage{
		client:     client,
		bucketName: opts.BucketName,
	}, nil
}

// Save uploads src as subdir/filename and returns the object name.
// Buckets have no directories, so repeated saves under the same prefix never conflict.
func (s *Storage) Save(ctx context.Context, subdir, filename string, src io.Reader) (string, error) {
	objectName := ObjectName(subdir, filename)

	_, err := s.client.PutObject(ctx, s.bucketName, objectName, src, size(src), minio.PutObjectOptions{
		ContentType: contentType(filename),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", objectName, err)
	}

	return objectName, nil
}

// size returns the number of unread bytes in src when it knows them, or -1.
// A known size lets the client send a single PUT instead of a multipart upload.
func size(src io.Reader) int64 {
	if l, ok := src.(interface{ Len() int }); ok {
		return int64(l.Len())
	}

	return -1
}

// ObjectName builds the object key for filename under the subdir prefix.
func ObjectName(subdir, filename string) string {
	return path.Join(filepath.ToSlash(subdir), filename)
}

// contentType guesses the MIME type of filename from its extension.
func contentType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}

	return "application/octet-stream"
}

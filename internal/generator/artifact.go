package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/opengi/papergen/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ArtifactStore persists generated paper documents.
type ArtifactStore interface {
	Put(ctx context.Context, filename string, content []byte) error
}

// NewArtifactStore picks the S3 backend when an endpoint is configured and
// falls back to the local output directory otherwise.
func NewArtifactStore(cfg *config.Config) (ArtifactStore, error) {
	if cfg.Artifact.S3.Endpoint != "" {
		return NewS3Store(cfg)
	}
	return NewLocalStore(cfg.Artifact.OutputDir), nil
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Put(_ context.Context, filename string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	return os.WriteFile(filepath.Join(s.dir, filename), content, 0o644)
}

// S3Store uploads paper artifacts to an S3-compatible bucket.
type S3Store struct {
	client   *minio.Client
	bucket   string
	initOnce sync.Once
	initErr  error
}

func NewS3Store(cfg *config.Config) (*S3Store, error) {
	s3 := cfg.Artifact.S3
	if s3.AccessKey == "" || s3.SecretKey == "" {
		return nil, errors.New("s3 access key and secret key are required")
	}

	client, err := minio.New(s3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3.AccessKey, s3.SecretKey, ""),
		Secure: s3.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to init s3 client")
	}

	return &S3Store{client: client, bucket: s3.Bucket}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	})
	return s.initErr
}

func (s *S3Store) Put(ctx context.Context, filename string, content []byte) error {
	if err := s.ensureBucket(ctx); err != nil {
		return errors.Wrap(err, "failed to ensure bucket")
	}

	_, err := s.client.PutObject(ctx, s.bucket, filename, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/markdown",
	})
	if err != nil {
		return err
	}

	zap.S().Named("artifacts").Infof("uploaded %s to bucket %s", filename, s.bucket)
	return nil
}

// Package blob publishes daily snapshots as a single JSON object.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/okian/asistencia/internal/domain/model"
	"github.com/okian/asistencia/pkg/logger"
	"github.com/okian/asistencia/pkg/metrics"
)

const (
	contentType  = "application/json"
	cacheControl = "no-cache"
)

// objectPutter is the subset of *minio.Client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioPublisher uploads snapshots to an S3 compatible bucket. Every publish
// overwrites the same object.
type MinioPublisher struct {
	client objectPutter
	bucket string
	object string
	logger logger.Logger
}

// ClientConfig holds the connection settings of the object store.
type ClientConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewMinioClient builds a client for the configured endpoint.
func NewMinioClient(cfg ClientConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClient, err)
	}
	return client, nil
}

// NewMinioPublisher writes snapshots to bucket/object through client.
func NewMinioPublisher(client objectPutter, bucket, object string, opts ...Option) *MinioPublisher {
	p := &MinioPublisher{
		client: client,
		bucket: bucket,
		object: object,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish serializes snap once and uploads it.
func (p *MinioPublisher) Publish(ctx context.Context, snap *model.DailySnapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}

	info, err := p.client.PutObject(ctx, p.bucket, p.object, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: cacheControl,
		})
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %w", ErrPublish, p.bucket, p.object, err)
	}

	metrics.UpdatePublishedBytes(len(payload))
	p.logger.Info(ctx, "snapshot published",
		logger.String("bucket", p.bucket),
		logger.String("object", p.object),
		logger.Int("bytes", len(payload)),
		logger.String("etag", info.ETag))
	return nil
}

// Encode returns the wire form of snap.
func Encode(snap *model.DailySnapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrEncode)
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return payload, nil
}

package kbsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/finvero/faqbot/internal/domain/faq"
)

// Object fetches the knowledge base JSON from an S3-compatible bucket
// (Cloudflare R2, MinIO, AWS S3).
type Object struct {
	client *minio.Client
	bucket string
	key    string
}

// ObjectConfig carries the bucket coordinates.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
	Region    string
}

// NewObject builds the object-storage source.
func NewObject(cfg ObjectConfig) (*Object, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("object source requires endpoint, bucket and key")
	}
	trimmed := sanitizeEndpoint(cfg.Endpoint)
	useSSL := strings.HasPrefix(cfg.Endpoint, "https://") || !strings.Contains(cfg.Endpoint, "://")
	client, err := minio.New(trimmed, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("create object client: %w", err)
	}
	return &Object{client: client, bucket: cfg.Bucket, key: cfg.Key}, nil
}

func (o *Object) Load(ctx context.Context) ([]faq.Entry, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", o.bucket, o.key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", o.bucket, o.key, err)
	}
	var entries []faq.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", o.bucket, o.key, err)
	}
	return entries, nil
}

func (o *Object) Describe() string {
	return fmt.Sprintf("object:%s/%s", o.bucket, o.key)
}

// sanitizeEndpoint strips the scheme and any path so minio receives a bare
// host[:port].
func sanitizeEndpoint(endpoint string) string {
	trimmed := endpoint
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	}
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed
}

var _ faq.Source = (*Object)(nil)

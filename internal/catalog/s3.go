package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"weather-dashboard/internal/config"
)

// LoadS3 reads the catalog CSV from an S3-compatible object store
func LoadS3(ctx context.Context, cfg config.S3Config) (*Catalog, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.Object == "" {
		return nil, fmt.Errorf("catalog s3 source requires endpoint, bucket and object")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	object, err := client.GetObject(ctx, cfg.Bucket, cfg.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog object: %w", err)
	}
	defer func(object *minio.Object) {
		_ = object.Close()
	}(object)

	cat, err := Parse(object)
	if err != nil {
		var s3Err minio.ErrorResponse
		if errors.As(err, &s3Err) {
			return nil, fmt.Errorf("failed to read s3://%s/%s: %s: %w", cfg.Bucket, cfg.Object, s3Err.Code, err)
		}
		return nil, fmt.Errorf("failed to parse s3://%s/%s: %w", cfg.Bucket, cfg.Object, err)
	}
	return cat, nil
}

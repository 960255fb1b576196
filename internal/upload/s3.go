package upload

import (
	"context"
	"fmt"
	"io"

	"catalog-admin/internal/config"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3KeyPrefix = "uploads/"

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage puts uploads into a bucket under the uploads/ prefix.
type S3Storage struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3Storage builds an S3 client from the default AWS chain. Static keys
// and a custom endpoint (LocalStack, MinIO) are honoured when configured.
func NewS3Storage(ctx context.Context, cfg config.UploadConfig) (*S3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 upload backend")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = sdkaws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.S3PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return newS3Storage(client, cfg.S3Bucket, baseURL), nil
}

func newS3Storage(client putObjectAPI, bucket, baseURL string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *S3Storage) Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	key := s3KeyPrefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        sdkaws.String(s.bucket),
		Key:           sdkaws.String(key),
		Body:          body,
		ContentType:   sdkaws.String(contentType),
		ContentLength: sdkaws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

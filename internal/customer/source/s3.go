package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/roommanager/internal/config"
)

// ObjectGetter is the part of the S3 API the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads the offers JSON document from an S3 compatible bucket.
type S3 struct {
	client ObjectGetter
	bucket string
	key    string
}

func NewS3(client ObjectGetter, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

// NewS3Client builds an S3 client for AWS or an S3 compatible endpoint.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket name is required")
	}
	if cfg.Region == "" {
		return nil, errors.New("s3: region is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(withScheme(cfg.Endpoint))
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

func withScheme(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Scheme != "" {
		return endpoint
	}
	return "https://" + endpoint
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Load(ctx context.Context) ([]decimal.Decimal, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("s3://%s/%s: object not found", s.bucket, s.key)
		}
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: read body: %w", s.bucket, s.key, err)
	}
	prices, err := ParseOffers(data)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return prices, nil
}

package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/portfolio"
)

// S3Config holds configuration for S3-compatible storage.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO or other S3-compatible stores
	AccessKey string
	SecretKey string
}

// S3Storage stores run and comparison documents in an S3 bucket.
// Keys follow the same layout as LocalStorage: <tenant>/runs/<id>.json.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage creates an S3Storage from the given config.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Storage) key(tenantID, kind, id string) string {
	return fmt.Sprintf("%s/%s/%s.json", tenantID, kind, id)
}

func (s *S3Storage) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) get(ctx context.Context, key string, v any) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3 object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return fmt.Errorf("read s3 object %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// PutRun uploads a run document and returns its object key.
func (s *S3Storage) PutRun(ctx context.Context, tenantID string, run *assess.Run) (string, error) {
	key := s.key(tenantID, "runs", run.ID)
	if err := s.put(ctx, key, run); err != nil {
		return "", err
	}
	return key, nil
}

// GetRun downloads a run document by ID.
func (s *S3Storage) GetRun(ctx context.Context, tenantID, runID string) (*assess.Run, error) {
	run := &assess.Run{}
	if err := s.get(ctx, s.key(tenantID, "runs", runID), run); err != nil {
		return nil, err
	}
	return run, nil
}

// PutComparison uploads a comparison document and returns its object key.
func (s *S3Storage) PutComparison(ctx context.Context, tenantID string, cmp *portfolio.Comparison) (string, error) {
	key := s.key(tenantID, "comparisons", cmp.ID)
	if err := s.put(ctx, key, cmp); err != nil {
		return "", err
	}
	return key, nil
}

// GetComparison downloads a comparison document by ID.
func (s *S3Storage) GetComparison(ctx context.Context, tenantID, comparisonID string) (*portfolio.Comparison, error) {
	cmp := &portfolio.Comparison{}
	if err := s.get(ctx, s.key(tenantID, "comparisons", comparisonID), cmp); err != nil {
		return nil, err
	}
	return cmp, nil
}

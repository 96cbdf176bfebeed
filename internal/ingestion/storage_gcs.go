package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/portfolio"
)

// GCSStorage stores run and comparison documents in a Google Cloud Storage
// bucket, using the same key layout as S3Storage.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSStorage creates a GCSStorage using application default credentials.
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (g *GCSStorage) key(tenantID, kind, id string) string {
	return fmt.Sprintf("%s/%s/%s.json", tenantID, kind, id)
}

func (g *GCSStorage) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write gcs object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close gcs object %s: %w", key, err)
	}
	return nil
}

func (g *GCSStorage) get(ctx context.Context, key string, v any) error {
	r, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("open gcs object %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read gcs object %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// PutRun uploads a run document and returns its object key.
func (g *GCSStorage) PutRun(ctx context.Context, tenantID string, run *assess.Run) (string, error) {
	key := g.key(tenantID, "runs", run.ID)
	if err := g.put(ctx, key, run); err != nil {
		return "", err
	}
	return key, nil
}

// GetRun downloads a run document by ID.
func (g *GCSStorage) GetRun(ctx context.Context, tenantID, runID string) (*assess.Run, error) {
	run := &assess.Run{}
	if err := g.get(ctx, g.key(tenantID, "runs", runID), run); err != nil {
		return nil, err
	}
	return run, nil
}

// PutComparison uploads a comparison document and returns its object key.
func (g *GCSStorage) PutComparison(ctx context.Context, tenantID string, cmp *portfolio.Comparison) (string, error) {
	key := g.key(tenantID, "comparisons", cmp.ID)
	if err := g.put(ctx, key, cmp); err != nil {
		return "", err
	}
	return key, nil
}

// GetComparison downloads a comparison document by ID.
func (g *GCSStorage) GetComparison(ctx context.Context, tenantID, comparisonID string) (*portfolio.Comparison, error) {
	cmp := &portfolio.Comparison{}
	if err := g.get(ctx, g.key(tenantID, "comparisons", comparisonID), cmp); err != nil {
		return nil, err
	}
	return cmp, nil
}

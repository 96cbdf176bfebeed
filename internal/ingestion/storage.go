package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/portfolio"
)

// StorageClient abstracts blob storage for run and comparison documents.
// Implementations: LocalStorage (filesystem), S3Storage, GCSStorage.
type StorageClient interface {
	PutRun(ctx context.Context, tenantID string, run *assess.Run) (ref string, err error)
	GetRun(ctx context.Context, tenantID, runID string) (*assess.Run, error)
	PutComparison(ctx context.Context, tenantID string, cmp *portfolio.Comparison) (ref string, err error)
	GetComparison(ctx context.Context, tenantID, comparisonID string) (*portfolio.Comparison, error)
}

// LocalStorage stores documents as JSON files on the local filesystem.
// Layout: <base>/<tenant>/runs/<id>.json and <base>/<tenant>/comparisons/<id>.json.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at baseDir.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (l *LocalStorage) path(tenantID, kind, id string) string {
	return filepath.Join(l.BaseDir, tenantID, kind, id+".json")
}

// PutRun persists a run document and returns its storage reference.
func (l *LocalStorage) PutRun(ctx context.Context, tenantID string, run *assess.Run) (string, error) {
	p := l.path(tenantID, "runs", run.ID)
	if err := assess.SaveRun(p, run); err != nil {
		return "", fmt.Errorf("store run %s: %w", run.ID, err)
	}
	return p, nil
}

// GetRun loads a run document by ID.
func (l *LocalStorage) GetRun(ctx context.Context, tenantID, runID string) (*assess.Run, error) {
	p := l.path(tenantID, "runs", runID)
	run, err := assess.LoadRun(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("run %s not found: %w", runID, err)
		}
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return run, nil
}

// PutComparison persists a comparison document and returns its storage reference.
func (l *LocalStorage) PutComparison(ctx context.Context, tenantID string, cmp *portfolio.Comparison) (string, error) {
	p := l.path(tenantID, "comparisons", cmp.ID)
	if err := portfolio.SaveComparison(p, cmp); err != nil {
		return "", fmt.Errorf("store comparison %s: %w", cmp.ID, err)
	}
	return p, nil
}

// GetComparison loads a comparison document by ID.
func (l *LocalStorage) GetComparison(ctx context.Context, tenantID, comparisonID string) (*portfolio.Comparison, error) {
	p := l.path(tenantID, "comparisons", comparisonID)
	cmp, err := portfolio.LoadComparison(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("comparison %s not found: %w", comparisonID, err)
		}
		return nil, fmt.Errorf("load comparison %s: %w", comparisonID, err)
	}
	return cmp, nil
}

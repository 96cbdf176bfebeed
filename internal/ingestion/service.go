// Package ingestion implements the run ingestion pipeline: accepting raw
// metric snapshots, grading them against threshold tables, persisting the
// resulting run documents to blob storage, and recording metadata rows in
// Postgres.
package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tierscope/tierscope/pkg/assess"
	"github.com/tierscope/tierscope/pkg/portfolio"
)

// Run processing statuses.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Service orchestrates run ingestion and comparison creation.
type Service struct {
	db      *sql.DB
	storage StorageClient
	tables  map[string]assess.ThresholdTable
}

// NewService creates an ingestion Service. tables maps category names to the
// threshold tables used to grade incoming metrics.
func NewService(db *sql.DB, storage StorageClient, tables map[string]assess.ThresholdTable) *Service {
	return &Service{db: db, storage: storage, tables: tables}
}

// RunInput is a raw metrics payload submitted for grading.
type RunInput struct {
	Controller string                                      `json:"controller"`
	Metrics    map[string]map[string]assess.MetricSnapshot `json:"metrics"` // category -> entity -> metrics
}

// RunRecord is the metadata row for a persisted run.
type RunRecord struct {
	ID            string
	TenantID      string
	PortfolioID   string
	Status        string
	Controller    string
	EntityCount   int
	CategoryCount int
	RatedCount    int
	Headline      *string
	StorageRef    *string
	Error         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComparisonRecord is the metadata row for a persisted comparison.
type ComparisonRecord struct {
	ID            string
	TenantID      string
	PortfolioID   string
	PreviousRunID string
	CurrentRunID  string
	Headline      string
	Upgraded      int
	Downgraded    int
	Unchanged     int
	StorageRef    *string
	CreatedAt     time.Time
}

// createRun inserts a run row, or returns the existing row ID when the
// idempotency key has been seen before.
func (s *Service) createRun(ctx context.Context, tenantID, portfolioID, idempotencyKey, controller string) (id, status string, err error) {
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO runs (id, tenant_id, portfolio_id, idempotency_key, status, controller)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (idempotency_key) DO UPDATE SET updated_at = now()
		 RETURNING id, status`,
		uuid.New().String(), tenantID, portfolioID, idempotencyKey, StatusQueued, controller,
	).Scan(&id, &status)
	if err != nil {
		return "", "", fmt.Errorf("create run: %w", err)
	}
	return id, status, nil
}

func (s *Service) updateRunStatus(ctx context.Context, runID, status string, errMsg *string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = $2, error = $3, updated_at = now() WHERE id = $1`,
		runID, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return nil
}

// IngestRun grades a raw metrics payload and persists the resulting run.
// Ingestion is idempotent: resubmitting the same idempotency key returns the
// previously recorded run without re-grading.
func (s *Service) IngestRun(ctx context.Context, tenantID, portfolioID, idempotencyKey string, input RunInput) (*RunRecord, error) {
	runID, status, err := s.createRun(ctx, tenantID, portfolioID, idempotencyKey, input.Controller)
	if err != nil {
		return nil, err
	}
	if status == StatusCompleted {
		log.Printf("run %s already completed for idempotency key %s, skipping", runID, idempotencyKey)
		return s.GetRunRecord(ctx, runID)
	}

	if err := s.updateRunStatus(ctx, runID, StatusRunning, nil); err != nil {
		return nil, err
	}

	rec, err := s.processRun(ctx, runID, tenantID, input)
	if err != nil {
		msg := err.Error()
		if uerr := s.updateRunStatus(ctx, runID, StatusFailed, &msg); uerr != nil {
			log.Printf("failed to mark run %s as failed: %v", runID, uerr)
		}
		return nil, err
	}
	return rec, nil
}

func (s *Service) processRun(ctx context.Context, runID, tenantID string, input RunInput) (*RunRecord, error) {
	run, err := assess.EvaluateAll(input.Controller, input.Metrics, s.tables)
	if err != nil {
		return nil, fmt.Errorf("grade run: %w", err)
	}
	run.ID = runID
	portfolio.DeriveOverall(run)

	ref, err := s.storage.PutRun(ctx, tenantID, run)
	if err != nil {
		return nil, fmt.Errorf("persist run document: %w", err)
	}

	ratings := overallRatings(run)
	cov := portfolio.ComputeCoverage(ratings)
	headline := string(portfolio.HeadlineTier(portfolio.TierDistribution(ratings)))

	_, err = s.db.ExecContext(ctx,
		`UPDATE runs
		 SET status = $2, entity_count = $3, category_count = $4, rated_count = $5,
		     headline = $6, storage_ref = $7, error = NULL, updated_at = now()
		 WHERE id = $1`,
		runID, StatusCompleted, cov.Total, len(run.Categories), cov.Rated, headline, ref,
	)
	if err != nil {
		return nil, fmt.Errorf("finalize run: %w", err)
	}
	return s.GetRunRecord(ctx, runID)
}

// overallRatings extracts the per-entity roll-up ratings from a run.
func overallRatings(run *assess.Run) []portfolio.Rating {
	var ratings []portfolio.Rating
	for entityID, score := range run.Scores[assess.CategoryOverall] {
		ratings = append(ratings, portfolio.Rating{EntityID: entityID, Tier: score.Overall})
	}
	return ratings
}

// CreateComparison compares two completed runs belonging to the same tenant
// and persists the result.
func (s *Service) CreateComparison(ctx context.Context, tenantID, portfolioID, previousRunID, currentRunID string) (*ComparisonRecord, error) {
	prev, err := s.storage.GetRun(ctx, tenantID, previousRunID)
	if err != nil {
		return nil, fmt.Errorf("load previous run: %w", err)
	}
	curr, err := s.storage.GetRun(ctx, tenantID, currentRunID)
	if err != nil {
		return nil, fmt.Errorf("load current run: %w", err)
	}

	cmp := portfolio.CompareRuns(prev, curr)

	ref, err := s.storage.PutComparison(ctx, tenantID, cmp)
	if err != nil {
		return nil, fmt.Errorf("persist comparison document: %w", err)
	}

	rec := &ComparisonRecord{}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO comparisons (id, tenant_id, portfolio_id, previous_run_id, current_run_id,
		                          headline, upgraded, downgraded, unchanged, storage_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, tenant_id, portfolio_id, previous_run_id, current_run_id,
		           headline, upgraded, downgraded, unchanged, storage_ref, created_at`,
		cmp.ID, tenantID, portfolioID, previousRunID, currentRunID,
		string(cmp.Summary.Headline), cmp.Summary.Upgraded, cmp.Summary.Downgraded, cmp.Summary.Unchanged, ref,
	).Scan(
		&rec.ID, &rec.TenantID, &rec.PortfolioID, &rec.PreviousRunID, &rec.CurrentRunID,
		&rec.Headline, &rec.Upgraded, &rec.Downgraded, &rec.Unchanged, &rec.StorageRef, &rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record comparison: %w", err)
	}
	return rec, nil
}

// GetRunRecord returns the metadata row for a run.
func (s *Service) GetRunRecord(ctx context.Context, runID string) (*RunRecord, error) {
	rec := &RunRecord{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, portfolio_id, status, controller,
		        entity_count, category_count, rated_count, headline,
		        storage_ref, error, created_at, updated_at
		 FROM runs WHERE id = $1`,
		runID,
	).Scan(
		&rec.ID, &rec.TenantID, &rec.PortfolioID, &rec.Status, &rec.Controller,
		&rec.EntityCount, &rec.CategoryCount, &rec.RatedCount, &rec.Headline,
		&rec.StorageRef, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return rec, nil
}

// GetRunDocument loads the full graded run document from blob storage.
func (s *Service) GetRunDocument(ctx context.Context, tenantID, runID string) (*assess.Run, error) {
	return s.storage.GetRun(ctx, tenantID, runID)
}

// GetComparisonDocument loads the full comparison document from blob storage.
func (s *Service) GetComparisonDocument(ctx context.Context, tenantID, comparisonID string) (*portfolio.Comparison, error) {
	return s.storage.GetComparison(ctx, tenantID, comparisonID)
}

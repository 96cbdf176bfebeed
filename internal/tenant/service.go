// Package tenant manages multi-tenant state: tenants (organizations posting
// graded runs) and the portfolios they monitor.
package tenant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Service provides tenant and portfolio management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Tenant represents an organization that submits runs.
type Tenant struct {
	ID          string
	DisplayName string
	CreatedAt   time.Time
}

// Portfolio represents a monitored application estate on a single
// controller, the scope over which runs are compared.
type Portfolio struct {
	ID         string
	TenantID   string
	Controller string
	Name       string
	CreatedAt  time.Time
}

// NewService creates a new tenant Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateTenant creates a new tenant.
func (s *Service) CreateTenant(ctx context.Context, displayName string) (*Tenant, error) {
	t := &Tenant{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tenants (display_name)
		 VALUES ($1)
		 RETURNING id, display_name, created_at`,
		displayName,
	).Scan(&t.ID, &t.DisplayName, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return t, nil
}

// GetTenantByName looks up a tenant by display name.
func (s *Service) GetTenantByName(ctx context.Context, name string) (*Tenant, error) {
	t := &Tenant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, created_at
		 FROM tenants WHERE display_name = $1`,
		name,
	).Scan(&t.ID, &t.DisplayName, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get tenant by name %s: %w", name, err)
	}
	return t, nil
}

// UpsertPortfolio creates or updates a portfolio record for a tenant.
func (s *Service) UpsertPortfolio(ctx context.Context, tenantID, controller, name string) (*Portfolio, error) {
	p := &Portfolio{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO portfolios (tenant_id, controller, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (tenant_id, controller) DO UPDATE
		   SET name = COALESCE(NULLIF(EXCLUDED.name, ''), portfolios.name)
		 RETURNING id, tenant_id, controller, name, created_at`,
		tenantID, controller, name,
	).Scan(&p.ID, &p.TenantID, &p.Controller, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert portfolio %s: %w", controller, err)
	}
	return p, nil
}

// GetPortfolio retrieves a portfolio by tenant ID and controller.
func (s *Service) GetPortfolio(ctx context.Context, tenantID, controller string) (*Portfolio, error) {
	p := &Portfolio{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, controller, name, created_at
		 FROM portfolios WHERE tenant_id = $1 AND controller = $2`,
		tenantID, controller,
	).Scan(&p.ID, &p.TenantID, &p.Controller, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get portfolio %s: %w", controller, err)
	}
	return p, nil
}

// ListPortfolios returns all portfolios for a tenant.
func (s *Service) ListPortfolios(ctx context.Context, tenantID string) ([]Portfolio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, controller, name, created_at
		 FROM portfolios WHERE tenant_id = $1 ORDER BY controller`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []Portfolio
	for rows.Next() {
		var p Portfolio
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Controller, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

// EnsureTenantAndPortfolio gets or creates a tenant (by name) and a portfolio
// for the given controller. Returns tenantID, portfolioID, and any error.
func (s *Service) EnsureTenantAndPortfolio(ctx context.Context, tenantName, controller string) (string, string, error) {
	t, err := s.GetTenantByName(ctx, tenantName)
	if err != nil {
		t, err = s.CreateTenant(ctx, tenantName)
		if err != nil {
			// Could be a race with a concurrent create; try getting again
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				t, err = s.GetTenantByName(ctx, tenantName)
				if err != nil {
					return "", "", fmt.Errorf("ensure tenant: %w", err)
				}
			} else {
				return "", "", fmt.Errorf("ensure tenant: %w", err)
			}
		}
	}

	p, err := s.UpsertPortfolio(ctx, t.ID, controller, "")
	if err != nil {
		return "", "", fmt.Errorf("ensure portfolio: %w", err)
	}
	return t.ID, p.ID, nil
}

// RunSummaryRow is the metadata listing shape for a run.
type RunSummaryRow struct {
	ID          string
	PortfolioID string
	Status      string
	Controller  string
	EntityCount int
	RatedCount  int
	Headline    *string
	CreatedAt   time.Time
}

// ComparisonSummaryRow is the metadata listing shape for a comparison.
type ComparisonSummaryRow struct {
	ID            string
	PortfolioID   string
	PreviousRunID string
	CurrentRunID  string
	Headline      string
	Upgraded      int
	Downgraded    int
	Unchanged     int
	CreatedAt     time.Time
}

// ListRunsByPortfolio returns all runs for a portfolio, newest first.
func (s *Service) ListRunsByPortfolio(ctx context.Context, portfolioID string) ([]RunSummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, portfolio_id, status, controller, entity_count, rated_count, headline, created_at
		 FROM runs WHERE portfolio_id = $1 ORDER BY created_at DESC`,
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummaryRow
	for rows.Next() {
		var r RunSummaryRow
		if err := rows.Scan(&r.ID, &r.PortfolioID, &r.Status, &r.Controller,
			&r.EntityCount, &r.RatedCount, &r.Headline, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListComparisonsByPortfolio returns all comparisons for a portfolio, newest first.
func (s *Service) ListComparisonsByPortfolio(ctx context.Context, portfolioID string) ([]ComparisonSummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, portfolio_id, previous_run_id, current_run_id,
		        headline, upgraded, downgraded, unchanged, created_at
		 FROM comparisons WHERE portfolio_id = $1 ORDER BY created_at DESC`,
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var cmps []ComparisonSummaryRow
	for rows.Next() {
		var c ComparisonSummaryRow
		if err := rows.Scan(&c.ID, &c.PortfolioID, &c.PreviousRunID, &c.CurrentRunID,
			&c.Headline, &c.Upgraded, &c.Downgraded, &c.Unchanged, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		cmps = append(cmps, c)
	}
	return cmps, rows.Err()
}

// LatestCompletedRuns returns the two most recent completed runs for a
// portfolio, newest first. Used to pick comparison endpoints automatically.
func (s *Service) LatestCompletedRuns(ctx context.Context, portfolioID string) ([]RunSummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, portfolio_id, status, controller, entity_count, rated_count, headline, created_at
		 FROM runs WHERE portfolio_id = $1 AND status = 'COMPLETED'
		 ORDER BY created_at DESC LIMIT 2`,
		portfolioID,
	)
	if err != nil {
		return nil, fmt.Errorf("latest completed runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummaryRow
	for rows.Next() {
		var r RunSummaryRow
		if err := rows.Scan(&r.ID, &r.PortfolioID, &r.Status, &r.Controller,
			&r.EntityCount, &r.RatedCount, &r.Headline, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

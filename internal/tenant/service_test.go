package tenant

import (
	"testing"
)

func TestTenantStruct(t *testing.T) {
	tenant := Tenant{
		ID:          "tenant-uuid-1",
		DisplayName: "acme",
	}

	if tenant.ID != "tenant-uuid-1" {
		t.Errorf("ID = %q, want %q", tenant.ID, "tenant-uuid-1")
	}
	if tenant.DisplayName != "acme" {
		t.Errorf("DisplayName = %q, want %q", tenant.DisplayName, "acme")
	}
}

func TestPortfolioStruct(t *testing.T) {
	p := Portfolio{
		ID:         "portfolio-uuid-1",
		TenantID:   "tenant-uuid-1",
		Controller: "prod.example.com:443",
		Name:       "production estate",
	}

	if p.Controller != "prod.example.com:443" {
		t.Errorf("Controller = %q, want %q", p.Controller, "prod.example.com:443")
	}
	if p.Name != "production estate" {
		t.Errorf("Name = %q, want %q", p.Name, "production estate")
	}
}

func TestNewService(t *testing.T) {
	// NewService should not panic with nil db (it just stores the reference).
	svc := NewService(nil)
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
}

func TestServiceMethodSet(t *testing.T) {
	// The Service methods all require a real Postgres database; full
	// integration tests would need one. Verify construction and the
	// expected method set compile.
	svc := &Service{}
	if svc.db != nil {
		t.Error("zero-value Service should have nil db")
	}

	_ = svc.CreateTenant
	_ = svc.GetTenantByName
	_ = svc.UpsertPortfolio
	_ = svc.GetPortfolio
	_ = svc.ListPortfolios
	_ = svc.EnsureTenantAndPortfolio
	_ = svc.ListRunsByPortfolio
	_ = svc.ListComparisonsByPortfolio
	_ = svc.LatestCompletedRuns
}

func TestRunSummaryRowOptionalHeadline(t *testing.T) {
	tests := []struct {
		name     string
		headline *string
		isNil    bool
	}{
		{name: "graded run", headline: ptrString("gold"), isNil: false},
		{name: "queued run", headline: nil, isNil: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := RunSummaryRow{
				ID:          "run-1",
				PortfolioID: "p-1",
				Status:      "COMPLETED",
				Headline:    tc.headline,
			}

			if (row.Headline == nil) != tc.isNil {
				t.Errorf("Headline nil = %v, want %v", row.Headline == nil, tc.isNil)
			}
			if !tc.isNil && *row.Headline != "gold" {
				t.Errorf("Headline = %q, want gold", *row.Headline)
			}
		})
	}
}

func ptrString(v string) *string {
	return &v
}

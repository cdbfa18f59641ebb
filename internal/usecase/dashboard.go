package usecase

import (
	"context"
	"fmt"

	"retail-dashboard/internal/domain"
)

// Snapshot is the read side of SnapshotLoader.
type Snapshot interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
	Invalidate()
}

// CSVEncoder serializes records for download.
type CSVEncoder func(records []domain.Transaction) ([]byte, error)

// DashboardUseCase orchestrates a filter pass over the cached snapshot.
type DashboardUseCase struct {
	snapshot Snapshot
	rules    InsightRules
}

// NewDashboardUseCase creates a new instance of the usecase.
func NewDashboardUseCase(snapshot Snapshot, rules InsightRules) *DashboardUseCase {
	return &DashboardUseCase{snapshot: snapshot, rules: rules}
}

// Build recomputes the report for spec from the cached snapshot.
func (uc *DashboardUseCase) Build(ctx context.Context, spec domain.FilterSpec) (*domain.DashboardReport, error) {
	records, err := uc.snapshot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}

	filtered := ApplyFilter(records, spec)
	kpis := ComputeKPIs(filtered)

	return &domain.DashboardReport{
		Filter:         spec,
		TotalRecords:   len(records),
		MatchedRecords: len(filtered),
		KPIs:           kpis,
		Insights:       uc.rules.Generate(kpis),
	}, nil
}

// Options returns the selectable filter values of the current snapshot.
func (uc *DashboardUseCase) Options(ctx context.Context) (domain.FilterOptions, error) {
	records, err := uc.snapshot.Load(ctx)
	if err != nil {
		return domain.FilterOptions{}, fmt.Errorf("could not load transactions: %w", err)
	}
	return BuildFilterOptions(records), nil
}

// Export encodes the records matching spec.
func (uc *DashboardUseCase) Export(ctx context.Context, spec domain.FilterSpec, encode CSVEncoder) ([]byte, error) {
	records, err := uc.snapshot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load transactions: %w", err)
	}

	data, err := encode(ApplyFilter(records, spec))
	if err != nil {
		return nil, fmt.Errorf("could not export transactions: %w", err)
	}
	return data, nil
}

// Refresh drops the cached snapshot; the next call reads the source again.
func (uc *DashboardUseCase) Refresh() {
	uc.snapshot.Invalidate()
}

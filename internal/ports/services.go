package ports

import (
	"context"
	"time"

	"github.com/seu-repo/evplan/internal/domain"
)

// FinancialAnalysisService triggers full recomputes and exposes loan
// schedules recomputed from current parameters.
type FinancialAnalysisService interface {
	RunProjectAnalysis(ctx context.Context, projectID string) (*domain.FinancialMetrics, error)
	RunStationAnalysis(ctx context.Context, stationID string) (*domain.FinancialMetrics, error)
	LoanSchedule(ctx context.Context, projectID string) ([]domain.LoanPeriod, error)
}

// EnvironmentalAnalysisService recomputes a stored environmental analysis.
// The boolean result reports whether the analysis was computable (it is false,
// with no error, when the scope has zero installed charging points).
type EnvironmentalAnalysisService interface {
	Run(ctx context.Context, analysisID string) (bool, error)
}

// AssetResolver flattens an analysis scope into the asset set below it.
type AssetResolver interface {
	Resolve(ctx context.Context, scope domain.AnalysisScope) (*domain.AssetSet, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

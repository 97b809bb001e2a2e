package environmental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/observability/telemetry"
	"github.com/seu-repo/evplan/internal/ports"
)

// Service recomputes stored environmental analyses. It shares the scope
// resolution of the financial engine but consumes its own emission-factor
// and vehicle-mix inputs.
type Service struct {
	resolver ports.AssetResolver
	analyses ports.AnalysisRepository
	vehicles ports.VehicleProfileRepository
	defaults Defaults
	now      func() time.Time
	log      *zap.Logger
}

// Defaults fill in analysis parameters left unset (nil): the grid emission
// factor, the equivalent-fuel emission factor and the renewable share of the
// supplied electricity. An explicit zero on the analysis is kept.
type Defaults struct {
	ElectricityEmissions float64 // gCO2/kWh
	FuelEmissions        float64 // gCO2/kWh equivalent
	RenewablePct         float64
}

func NewService(
	resolver ports.AssetResolver,
	analyses ports.AnalysisRepository,
	vehicles ports.VehicleProfileRepository,
	log *zap.Logger,
) *Service {
	return &Service{
		resolver: resolver,
		analyses: analyses,
		vehicles: vehicles,
		now:      time.Now,
		log:      log,
	}
}

// WithClock overrides the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithDefaults sets the fallback emission parameters applied to analyses
// that do not carry their own.
func (s *Service) WithDefaults(d Defaults) *Service {
	s.defaults = d
	return s
}

func (s *Service) applyDefaults(analysis *domain.EnvironmentalAnalysis) {
	if analysis.ElectricityEmissions == nil {
		v := s.defaults.ElectricityEmissions
		analysis.ElectricityEmissions = &v
	}
	if analysis.FuelEmissions == nil {
		v := s.defaults.FuelEmissions
		analysis.FuelEmissions = &v
	}
	if analysis.RenewablePct == nil {
		v := s.defaults.RenewablePct
		analysis.RenewablePct = &v
	}
}

// Run recomputes the analysis wholesale and persists the result. Returns the
// computable flag: false (no error) when the scope has zero charging points.
func (s *Service) Run(ctx context.Context, analysisID string) (bool, error) {
	analysis, err := s.analyses.FindEnvironmentalByID(ctx, analysisID)
	if err != nil {
		return false, fmt.Errorf("find environmental analysis: %w", err)
	}
	if analysis == nil {
		return false, domain.NewScopeNotFoundError(domain.AnalysisScope{Kind: "environmental_analysis", EntityID: analysisID})
	}

	assets, err := s.resolver.Resolve(ctx, analysis.Scope())
	if err != nil {
		return false, err
	}

	profiles, err := s.vehicles.FindAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load vehicle profiles: %w", err)
	}

	s.applyDefaults(analysis)
	Project(analysis, assets, profiles, s.now())

	if err := s.analyses.ReplaceEnvironmental(ctx, analysis); err != nil {
		return false, fmt.Errorf("persist environmental analysis: %w", err)
	}

	status := "ok"
	if !analysis.Computable {
		status = "non_computable"
	}
	telemetry.AnalysisRunsTotal.WithLabelValues("environmental", status).Inc()

	s.log.Info("environmental analysis completed",
		zap.String("analysis_id", analysis.ID),
		zap.Bool("computable", analysis.Computable),
		zap.Float64("total_co2_saved_tons", analysis.TotalCO2SavedTons),
	)
	return analysis.Computable, nil
}

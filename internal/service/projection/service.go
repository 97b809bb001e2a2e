package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/adapter/queue"
	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/observability/telemetry"
	"github.com/seu-repo/evplan/internal/ports"
)

const (
	financialCompletedSubject = "analysis.financial.completed"
	metricsCacheTTL           = 15 * time.Minute
)

// Config tunes one analysis service instance.
type Config struct {
	DecommissionProbability float64
	FailureAnnualIncrease   float64
	SeasonalFactors         map[time.Month]float64
	SeverityTiers           *SeverityConfig
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		DecommissionProbability: DefaultDecommissionProbability,
		FailureAnnualIncrease:   0.10,
		SeasonalFactors:         DefaultSeasonalFactors,
	}
}

// Service runs full financial recomputes: scope resolution, amortization,
// failure simulation, cash-flow projection, metrics, transactional
// persistence, cache and event publication.
type Service struct {
	resolver ports.AssetResolver
	params   ports.ParameterRepository
	analyses ports.AnalysisRepository
	cache    ports.Cache
	queue    queue.MessageQueue
	cfg      *Config
	newRand  func() *rand.Rand
	log      *zap.Logger
}

func NewService(
	resolver ports.AssetResolver,
	params ports.ParameterRepository,
	analyses ports.AnalysisRepository,
	cache ports.Cache,
	mq queue.MessageQueue,
	cfg *Config,
	log *zap.Logger,
) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{
		resolver: resolver,
		params:   params,
		analyses: analyses,
		cache:    cache,
		queue:    mq,
		cfg:      cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		log: log,
	}
}

// WithRandSource overrides the fresh-seed randomness source, used by tests to
// make failure simulation reproducible.
func (s *Service) WithRandSource(newRand func() *rand.Rand) *Service {
	s.newRand = newRand
	return s
}

// RunProjectAnalysis recomputes the full financial analysis of a project and
// persists every derived artifact in one transaction.
func (s *Service) RunProjectAnalysis(ctx context.Context, projectID string) (*domain.FinancialMetrics, error) {
	return s.run(ctx, domain.ProjectScope(projectID), projectID)
}

// RunStationAnalysis recomputes the financial analysis of a single station,
// using the parameters of nothing but the station itself (loan amount 0).
func (s *Service) RunStationAnalysis(ctx context.Context, stationID string) (*domain.FinancialMetrics, error) {
	return s.run(ctx, domain.StationScope(stationID), "")
}

func (s *Service) run(ctx context.Context, scope domain.AnalysisScope, projectID string) (*domain.FinancialMetrics, error) {
	start := time.Now()

	assets, err := s.resolver.Resolve(ctx, scope)
	if err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "error").Inc()
		return nil, err
	}

	params, err := s.parametersFor(ctx, projectID)
	if err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "error").Inc()
		return nil, err
	}
	if err := params.Validate(); err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "rejected").Inc()
		return nil, err
	}

	loan, err := Amortize(LoanTerms{
		Principal:     params.LoanAmount,
		AnnualRatePct: params.LoanRate,
		TermPeriods:   params.LoanTermYears,
		GracePeriods:  params.GracePeriodYears,
	})
	if err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "rejected").Inc()
		return nil, err
	}

	simulator, err := NewFailureSimulator(FailureConfig{
		BaseProbability:         params.FailureProbability / 100,
		AnnualIncrease:          s.cfg.FailureAnnualIncrease,
		RepairCostPct:           params.RepairCostPercentage / 100,
		DecommissionProbability: s.cfg.DecommissionProbability,
		Severity:                s.cfg.SeverityTiers,
	}, s.newRand(), s.log)
	if err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "rejected").Inc()
		return nil, err
	}
	failures := simulator.Run(assets, params.InvestmentYears)

	projector := NewCashFlowProjector(NewRateProjector(s.cfg.SeasonalFactors), s.log)
	series := projector.ProjectAnnual(assets, params, loan, failures)
	metrics := ComputeMetrics(series, params.DiscountRate/100)
	if metrics.IRR == 0 && metrics.NPV != 0 {
		telemetry.IRRFallbacksTotal.Inc()
	}

	analysis := &domain.FinancialAnalysis{
		ID:               uuid.NewString(),
		Metrics:          metrics,
		CashFlow:         series,
		Loan:             loan,
		Failures:         failures.Periods,
		TotalFailures:    failures.TotalFailures,
		TotalRepairCost:  failures.TotalRepairCost,
		TotalRevenueLoss: failures.TotalRevenueLoss,
		ComputedAt:       time.Now(),
	}
	switch scope.Kind {
	case domain.ScopeProject:
		id := scope.EntityID
		analysis.ProjectID = &id
	case domain.ScopeStation:
		id := scope.EntityID
		analysis.StationID = &id
	}

	if err := s.analyses.ReplaceFinancial(ctx, analysis); err != nil {
		telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "error").Inc()
		return nil, fmt.Errorf("persist financial analysis: %w", err)
	}

	s.cacheMetrics(ctx, scope, &metrics)
	s.publishCompleted(scope, analysis)

	telemetry.AnalysisRunsTotal.WithLabelValues(string(scope.Kind), "ok").Inc()
	telemetry.AnalysisDuration.Observe(time.Since(start).Seconds())
	telemetry.SimulatedFailuresTotal.Add(float64(failures.TotalFailures))

	s.log.Info("financial analysis completed",
		zap.String("scope", scope.String()),
		zap.Float64("npv", metrics.NPV),
		zap.Float64("irr", metrics.IRR),
		zap.Float64("payback", metrics.PaybackPeriod),
	)
	return &metrics, nil
}

// LoanSchedule recomputes the schedule from the project's current
// parameters. It is not cached separately from the full analysis.
func (s *Service) LoanSchedule(ctx context.Context, projectID string) ([]domain.LoanPeriod, error) {
	params, err := s.parametersFor(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return Amortize(LoanTerms{
		Principal:     params.LoanAmount,
		AnnualRatePct: params.LoanRate,
		TermPeriods:   params.LoanTermYears,
		GracePeriods:  params.GracePeriodYears,
	})
}

// parametersFor fetches the project parameters, creating defaults on first
// access. Station-scoped runs have no owning project and use plain defaults
// with no loan.
func (s *Service) parametersFor(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
	if projectID == "" {
		params := domain.DefaultFinancialParameters("")
		params.LoanAmount = 0
		return params, nil
	}

	params, err := s.params.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find financial parameters: %w", err)
	}
	if params != nil {
		return params, nil
	}

	params = domain.DefaultFinancialParameters(projectID)
	params.ID = uuid.NewString()
	if err := s.params.Save(ctx, params); err != nil {
		return nil, fmt.Errorf("create default financial parameters: %w", err)
	}
	s.log.Info("created default financial parameters", zap.String("project_id", projectID))
	return params, nil
}

func (s *Service) cacheMetrics(ctx context.Context, scope domain.AnalysisScope, metrics *domain.FinancialMetrics) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	key := fmt.Sprintf("evplan:metrics:%s", scope)
	if err := s.cache.Set(ctx, key, data, metricsCacheTTL); err != nil {
		s.log.Warn("failed to cache metrics", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) publishCompleted(scope domain.AnalysisScope, analysis *domain.FinancialAnalysis) {
	if s.queue == nil {
		return
	}
	event := map[string]interface{}{
		"analysis_id": analysis.ID,
		"scope":       scope.String(),
		"npv":         analysis.Metrics.NPV,
		"irr":         analysis.Metrics.IRR,
		"computed_at": analysis.ComputedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.queue.Publish(financialCompletedSubject, data); err != nil {
		s.log.Warn("failed to publish analysis event", zap.Error(err))
	}
}

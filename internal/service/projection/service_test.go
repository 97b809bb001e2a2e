package projection

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/mocks"
)

func fixedRand() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewSource(42)) }
}

func serviceFixture(t *testing.T) (*Service, *mocks.MockAnalysisRepository, *mocks.MockMessageQueue) {
	t.Helper()

	projects := &mocks.MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Project, error) {
			return &domain.Project{ID: id}, nil
		},
	}
	stations := &mocks.MockStationRepository{
		FindByProjectIDFunc: func(ctx context.Context, projectID string) ([]domain.ChargingStation, error) {
			return testAssets().Stations, nil
		},
	}
	resolver := NewAggregator(stations, &mocks.MockPVInstallationRepository{}, projects, zap.NewNop())

	analyses := &mocks.MockAnalysisRepository{}
	queue := mocks.NewMockMessageQueue()
	svc := NewService(
		resolver,
		&mocks.MockParameterRepository{},
		analyses,
		mocks.NewMockCache(),
		queue,
		nil,
		zap.NewNop(),
	).WithRandSource(fixedRand())

	return svc, analyses, queue
}

func TestService_RunProjectAnalysis(t *testing.T) {
	svc, analyses, queue := serviceFixture(t)

	var persisted *domain.FinancialAnalysis
	analyses.ReplaceFinancialFunc = func(ctx context.Context, analysis *domain.FinancialAnalysis) error {
		persisted = analysis
		return nil
	}

	metrics, err := svc.RunProjectAnalysis(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("RunProjectAnalysis failed: %v", err)
	}

	if metrics.TotalInvestment != 100000 {
		t.Errorf("TotalInvestment = %f, expected 100000", metrics.TotalInvestment)
	}

	if persisted == nil {
		t.Fatal("Analysis was not persisted")
	}
	if persisted.ProjectID == nil || *persisted.ProjectID != "p-1" {
		t.Errorf("Persisted analysis not bound to the project, got %+v", persisted.ProjectID)
	}
	if persisted.StationID != nil {
		t.Error("Project-scoped analysis must not carry a station id")
	}
	if len(persisted.CashFlow) == 0 || len(persisted.Loan) == 0 || len(persisted.Failures) == 0 {
		t.Error("Persisted analysis missing derived series")
	}

	// Completion event published with the computed headline numbers.
	events := queue.GetPublishedMessages("analysis.financial.completed")
	if len(events) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(events))
	}
	var event map[string]interface{}
	if err := json.Unmarshal(events[0], &event); err != nil {
		t.Fatalf("Event is not valid JSON: %v", err)
	}
	if event["scope"] != "project:p-1" {
		t.Errorf("Event scope = %v, expected project:p-1", event["scope"])
	}
}

func TestService_RunProjectAnalysis_CreatesDefaultParameters(t *testing.T) {
	svc, _, _ := serviceFixture(t)

	var saved *domain.FinancialParameters
	params := &mocks.MockParameterRepository{
		SaveFunc: func(ctx context.Context, p *domain.FinancialParameters) error {
			saved = p
			return nil
		},
	}
	svc.params = params

	if _, err := svc.RunProjectAnalysis(context.Background(), "p-1"); err != nil {
		t.Fatalf("RunProjectAnalysis failed: %v", err)
	}

	if saved == nil {
		t.Fatal("Default parameters were not created on first access")
	}
	if saved.ProjectID != "p-1" {
		t.Errorf("Default parameters bound to %q, expected p-1", saved.ProjectID)
	}
	if saved.InvestmentYears != 10 || saved.DiscountRate != 8.0 {
		t.Errorf("Unexpected defaults: %+v", saved)
	}
}

func TestService_RunProjectAnalysis_InvalidParameters(t *testing.T) {
	svc, analyses, _ := serviceFixture(t)

	bad := domain.DefaultFinancialParameters("p-1")
	bad.InvestmentYears = 99
	svc.params = &mocks.MockParameterRepository{
		FindByProjectIDFunc: func(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
			return bad, nil
		},
	}

	replaced := false
	analyses.ReplaceFinancialFunc = func(ctx context.Context, analysis *domain.FinancialAnalysis) error {
		replaced = true
		return nil
	}

	_, err := svc.RunProjectAnalysis(context.Background(), "p-1")
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if replaced {
		t.Error("Rejected parameters must not persist anything")
	}
}

func TestService_RunProjectAnalysis_UnknownProject(t *testing.T) {
	resolver := NewAggregator(
		&mocks.MockStationRepository{},
		&mocks.MockPVInstallationRepository{},
		&mocks.MockProjectRepository{},
		zap.NewNop(),
	)
	svc := NewService(resolver, &mocks.MockParameterRepository{}, &mocks.MockAnalysisRepository{},
		nil, nil, nil, zap.NewNop()).WithRandSource(fixedRand())

	_, err := svc.RunProjectAnalysis(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected an error for an unknown project")
	}
}

func TestService_RunStationAnalysis(t *testing.T) {
	station := testAssets().Stations[0]
	stations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.ChargingStation, error) {
			s := station
			return &s, nil
		},
	}
	resolver := NewAggregator(stations, &mocks.MockPVInstallationRepository{}, &mocks.MockProjectRepository{}, zap.NewNop())

	var persisted *domain.FinancialAnalysis
	analyses := &mocks.MockAnalysisRepository{
		ReplaceFinancialFunc: func(ctx context.Context, analysis *domain.FinancialAnalysis) error {
			persisted = analysis
			return nil
		},
	}

	// Parameter lookups must not happen for station scope: defaults with no
	// loan apply.
	params := &mocks.MockParameterRepository{
		FindByProjectIDFunc: func(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
			t.Error("Station-scoped analysis must not look up project parameters")
			return nil, nil
		},
	}

	svc := NewService(resolver, params, analyses, nil, nil, nil, zap.NewNop()).WithRandSource(fixedRand())

	metrics, err := svc.RunStationAnalysis(context.Background(), station.ID)
	if err != nil {
		t.Fatalf("RunStationAnalysis failed: %v", err)
	}
	if metrics.TotalInvestment != 40000 {
		t.Errorf("TotalInvestment = %f, expected 40000", metrics.TotalInvestment)
	}

	if persisted == nil {
		t.Fatal("Analysis was not persisted")
	}
	if persisted.StationID == nil || *persisted.StationID != station.ID {
		t.Errorf("Persisted analysis not bound to the station, got %+v", persisted.StationID)
	}
	if persisted.ProjectID != nil {
		t.Error("Station-scoped analysis must not carry a project id")
	}

	// No loan for station scope.
	for _, row := range persisted.CashFlow {
		if row.LoanPayment != 0 {
			t.Errorf("Station analysis should carry no loan payments, got %f", row.LoanPayment)
		}
	}
}

func TestService_EmptyScope(t *testing.T) {
	// A valid project with no assets: the analysis completes with all-zero
	// metrics instead of failing.
	projects := &mocks.MockProjectRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Project, error) {
			return &domain.Project{ID: id}, nil
		},
	}
	resolver := NewAggregator(&mocks.MockStationRepository{}, &mocks.MockPVInstallationRepository{}, projects, zap.NewNop())
	svc := NewService(resolver, &mocks.MockParameterRepository{}, &mocks.MockAnalysisRepository{},
		nil, nil, nil, zap.NewNop()).WithRandSource(fixedRand())

	metrics, err := svc.RunProjectAnalysis(context.Background(), "p-empty")
	if err != nil {
		t.Fatalf("RunProjectAnalysis failed: %v", err)
	}
	if metrics.TotalInvestment != 0 || metrics.ROI != 0 || metrics.ProfitabilityIndex != 0 {
		t.Errorf("Empty scope should produce zero metrics, got %+v", metrics)
	}
	if metrics.TotalRevenue != 0 || metrics.TotalCosts != 0 {
		t.Errorf("Empty scope should produce zero totals, got %+v", metrics)
	}
}

func TestService_LoanSchedule(t *testing.T) {
	params := domain.DefaultFinancialParameters("p-1")
	params.LoanAmount = 100000
	svc, _, _ := serviceFixture(t)
	svc.params = &mocks.MockParameterRepository{
		FindByProjectIDFunc: func(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
			return params, nil
		},
	}

	schedule, err := svc.LoanSchedule(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("LoanSchedule failed: %v", err)
	}
	if len(schedule) != params.LoanTermYears+1 {
		t.Fatalf("Expected %d rows, got %d", params.LoanTermYears+1, len(schedule))
	}
	if schedule[0].Balance != 100000 {
		t.Errorf("Opening balance = %f, expected 100000", schedule[0].Balance)
	}
}

package mocks

import (
	"context"

	"github.com/seu-repo/evplan/internal/domain"
)

// MockStationRepository is a mock implementation of StationRepository
type MockStationRepository struct {
	SaveFunc               func(ctx context.Context, station *domain.ChargingStation) error
	FindByIDFunc           func(ctx context.Context, id string) (*domain.ChargingStation, error)
	FindBySubProjectIDFunc func(ctx context.Context, subProjectID string) ([]domain.ChargingStation, error)
	FindByProjectIDFunc    func(ctx context.Context, projectID string) ([]domain.ChargingStation, error)
	FindAllFunc            func(ctx context.Context) ([]domain.ChargingStation, error)
}

func (m *MockStationRepository) Save(ctx context.Context, station *domain.ChargingStation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, station)
	}
	return nil
}

func (m *MockStationRepository) FindByID(ctx context.Context, id string) (*domain.ChargingStation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStationRepository) FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.ChargingStation, error) {
	if m.FindBySubProjectIDFunc != nil {
		return m.FindBySubProjectIDFunc(ctx, subProjectID)
	}
	return []domain.ChargingStation{}, nil
}

func (m *MockStationRepository) FindByProjectID(ctx context.Context, projectID string) ([]domain.ChargingStation, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return []domain.ChargingStation{}, nil
}

func (m *MockStationRepository) FindAll(ctx context.Context) ([]domain.ChargingStation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.ChargingStation{}, nil
}

// MockPVInstallationRepository is a mock implementation of PVInstallationRepository
type MockPVInstallationRepository struct {
	SaveFunc               func(ctx context.Context, pv *domain.PVInstallation) error
	FindBySubProjectIDFunc func(ctx context.Context, subProjectID string) ([]domain.PVInstallation, error)
	FindByProjectIDFunc    func(ctx context.Context, projectID string) ([]domain.PVInstallation, error)
	FindAllFunc            func(ctx context.Context) ([]domain.PVInstallation, error)
}

func (m *MockPVInstallationRepository) FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.PVInstallation, error) {
	if m.FindBySubProjectIDFunc != nil {
		return m.FindBySubProjectIDFunc(ctx, subProjectID)
	}
	return []domain.PVInstallation{}, nil
}

func (m *MockPVInstallationRepository) Save(ctx context.Context, pv *domain.PVInstallation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pv)
	}
	return nil
}

func (m *MockPVInstallationRepository) FindByProjectID(ctx context.Context, projectID string) ([]domain.PVInstallation, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return []domain.PVInstallation{}, nil
}

func (m *MockPVInstallationRepository) FindAll(ctx context.Context) ([]domain.PVInstallation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.PVInstallation{}, nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	SaveFunc               func(ctx context.Context, project *domain.Project) error
	FindByIDFunc           func(ctx context.Context, id string) (*domain.Project, error)
	FindSubProjectByIDFunc func(ctx context.Context, id string) (*domain.SubProject, error)
	SaveSubProjectFunc     func(ctx context.Context, sp *domain.SubProject) error
}

func (m *MockProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindSubProjectByID(ctx context.Context, id string) (*domain.SubProject, error) {
	if m.FindSubProjectByIDFunc != nil {
		return m.FindSubProjectByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) SaveSubProject(ctx context.Context, sp *domain.SubProject) error {
	if m.SaveSubProjectFunc != nil {
		return m.SaveSubProjectFunc(ctx, sp)
	}
	return nil
}

// MockParameterRepository is a mock implementation of ParameterRepository
type MockParameterRepository struct {
	SaveFunc            func(ctx context.Context, params *domain.FinancialParameters) error
	FindByProjectIDFunc func(ctx context.Context, projectID string) (*domain.FinancialParameters, error)
}

func (m *MockParameterRepository) Save(ctx context.Context, params *domain.FinancialParameters) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, params)
	}
	return nil
}

func (m *MockParameterRepository) FindByProjectID(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

// MockAnalysisRepository is a mock implementation of AnalysisRepository
type MockAnalysisRepository struct {
	ReplaceFinancialFunc         func(ctx context.Context, analysis *domain.FinancialAnalysis) error
	FindFinancialByProjectIDFunc func(ctx context.Context, projectID string) (*domain.FinancialAnalysis, error)
	FindFinancialByStationIDFunc func(ctx context.Context, stationID string) (*domain.FinancialAnalysis, error)
	SaveEnvironmentalFunc        func(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error
	ReplaceEnvironmentalFunc     func(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error
	FindEnvironmentalByIDFunc    func(ctx context.Context, id string) (*domain.EnvironmentalAnalysis, error)
}

func (m *MockAnalysisRepository) ReplaceFinancial(ctx context.Context, analysis *domain.FinancialAnalysis) error {
	if m.ReplaceFinancialFunc != nil {
		return m.ReplaceFinancialFunc(ctx, analysis)
	}
	return nil
}

func (m *MockAnalysisRepository) FindFinancialByProjectID(ctx context.Context, projectID string) (*domain.FinancialAnalysis, error) {
	if m.FindFinancialByProjectIDFunc != nil {
		return m.FindFinancialByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockAnalysisRepository) FindFinancialByStationID(ctx context.Context, stationID string) (*domain.FinancialAnalysis, error) {
	if m.FindFinancialByStationIDFunc != nil {
		return m.FindFinancialByStationIDFunc(ctx, stationID)
	}
	return nil, nil
}

func (m *MockAnalysisRepository) SaveEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error {
	if m.SaveEnvironmentalFunc != nil {
		return m.SaveEnvironmentalFunc(ctx, analysis)
	}
	return nil
}

func (m *MockAnalysisRepository) ReplaceEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error {
	if m.ReplaceEnvironmentalFunc != nil {
		return m.ReplaceEnvironmentalFunc(ctx, analysis)
	}
	return nil
}

func (m *MockAnalysisRepository) FindEnvironmentalByID(ctx context.Context, id string) (*domain.EnvironmentalAnalysis, error) {
	if m.FindEnvironmentalByIDFunc != nil {
		return m.FindEnvironmentalByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockVehicleProfileRepository is a mock implementation of VehicleProfileRepository
type MockVehicleProfileRepository struct {
	SaveFunc    func(ctx context.Context, profile *domain.VehicleTypeProfile) error
	FindAllFunc func(ctx context.Context) ([]domain.VehicleTypeProfile, error)
}

func (m *MockVehicleProfileRepository) Save(ctx context.Context, profile *domain.VehicleTypeProfile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, profile)
	}
	return nil
}

func (m *MockVehicleProfileRepository) FindAll(ctx context.Context) ([]domain.VehicleTypeProfile, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []domain.VehicleTypeProfile{}, nil
}

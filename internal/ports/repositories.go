package ports

import (
	"context"

	"github.com/seu-repo/evplan/internal/domain"
)

type StationRepository interface {
	Save(ctx context.Context, station *domain.ChargingStation) error
	FindByID(ctx context.Context, id string) (*domain.ChargingStation, error)
	FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.ChargingStation, error)
	FindByProjectID(ctx context.Context, projectID string) ([]domain.ChargingStation, error)
	FindAll(ctx context.Context) ([]domain.ChargingStation, error)
}

type PVInstallationRepository interface {
	Save(ctx context.Context, pv *domain.PVInstallation) error
	FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.PVInstallation, error)
	FindByProjectID(ctx context.Context, projectID string) ([]domain.PVInstallation, error)
	FindAll(ctx context.Context) ([]domain.PVInstallation, error)
}

type ProjectRepository interface {
	Save(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindSubProjectByID(ctx context.Context, id string) (*domain.SubProject, error)
	SaveSubProject(ctx context.Context, sp *domain.SubProject) error
}

// ParameterRepository stores per-project financial parameters. FindByProjectID
// returns (nil, nil) when the project has no parameters yet; the caller
// decides whether absence means "create defaults" or "error".
type ParameterRepository interface {
	Save(ctx context.Context, params *domain.FinancialParameters) error
	FindByProjectID(ctx context.Context, projectID string) (*domain.FinancialParameters, error)
}

// AnalysisRepository stores derived analysis artifacts. Replace* calls are
// all-or-nothing: prior derived rows for the same scope are removed and
// replaced in a single transaction.
type AnalysisRepository interface {
	ReplaceFinancial(ctx context.Context, analysis *domain.FinancialAnalysis) error
	FindFinancialByProjectID(ctx context.Context, projectID string) (*domain.FinancialAnalysis, error)
	FindFinancialByStationID(ctx context.Context, stationID string) (*domain.FinancialAnalysis, error)

	SaveEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error
	ReplaceEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error
	FindEnvironmentalByID(ctx context.Context, id string) (*domain.EnvironmentalAnalysis, error)
}

type VehicleProfileRepository interface {
	Save(ctx context.Context, profile *domain.VehicleTypeProfile) error
	FindAll(ctx context.Context) ([]domain.VehicleTypeProfile, error)
}

package projection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

// Aggregator resolves an analysis scope into the flat set of costed assets
// below it. Read-only, no side effects.
type Aggregator struct {
	stations ports.StationRepository
	pv       ports.PVInstallationRepository
	projects ports.ProjectRepository
	log      *zap.Logger
}

func NewAggregator(
	stations ports.StationRepository,
	pv ports.PVInstallationRepository,
	projects ports.ProjectRepository,
	log *zap.Logger,
) *Aggregator {
	return &Aggregator{stations: stations, pv: pv, projects: projects, log: log}
}

// Resolve flattens the scope. The referenced entity must exist even when it
// has no assets below it: an unknown id is a ScopeNotFoundError, an empty
// but valid scope is an empty set.
func (a *Aggregator) Resolve(ctx context.Context, scope domain.AnalysisScope) (*domain.AssetSet, error) {
	switch scope.Kind {
	case domain.ScopeGlobal:
		return a.resolveGlobal(ctx)
	case domain.ScopeProject:
		return a.resolveProject(ctx, scope)
	case domain.ScopeSubProject:
		return a.resolveSubProject(ctx, scope)
	case domain.ScopeStation:
		return a.resolveStation(ctx, scope)
	default:
		return nil, fmt.Errorf("unknown scope kind: %q", scope.Kind)
	}
}

func (a *Aggregator) resolveGlobal(ctx context.Context) (*domain.AssetSet, error) {
	stations, err := a.stations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate stations: %w", err)
	}
	pv, err := a.pv.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate pv installations: %w", err)
	}
	return &domain.AssetSet{Stations: stations, PV: pv}, nil
}

func (a *Aggregator) resolveProject(ctx context.Context, scope domain.AnalysisScope) (*domain.AssetSet, error) {
	project, err := a.projects.FindByID(ctx, scope.EntityID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if project == nil {
		return nil, domain.NewScopeNotFoundError(scope)
	}

	stations, err := a.stations.FindByProjectID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate project stations: %w", err)
	}
	pv, err := a.pv.FindByProjectID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate project pv installations: %w", err)
	}

	a.log.Debug("resolved project scope",
		zap.String("project_id", project.ID),
		zap.Int("stations", len(stations)),
		zap.Int("pv_installations", len(pv)),
	)
	return &domain.AssetSet{Stations: stations, PV: pv}, nil
}

func (a *Aggregator) resolveSubProject(ctx context.Context, scope domain.AnalysisScope) (*domain.AssetSet, error) {
	sp, err := a.projects.FindSubProjectByID(ctx, scope.EntityID)
	if err != nil {
		return nil, fmt.Errorf("find sub-project: %w", err)
	}
	if sp == nil {
		return nil, domain.NewScopeNotFoundError(scope)
	}

	stations, err := a.stations.FindBySubProjectID(ctx, sp.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate sub-project stations: %w", err)
	}
	pv, err := a.pv.FindBySubProjectID(ctx, sp.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate sub-project pv installations: %w", err)
	}
	return &domain.AssetSet{Stations: stations, PV: pv}, nil
}

func (a *Aggregator) resolveStation(ctx context.Context, scope domain.AnalysisScope) (*domain.AssetSet, error) {
	station, err := a.stations.FindByID(ctx, scope.EntityID)
	if err != nil {
		return nil, fmt.Errorf("find station: %w", err)
	}
	if station == nil {
		return nil, domain.NewScopeNotFoundError(scope)
	}
	return &domain.AssetSet{Stations: []domain.ChargingStation{*station}}, nil
}

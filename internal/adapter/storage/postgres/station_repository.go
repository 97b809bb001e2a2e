package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

type StationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStationRepository(db *gorm.DB, log *zap.Logger) ports.StationRepository {
	return &StationRepository{db: db, log: log}
}

func (r *StationRepository) Save(ctx context.Context, station *domain.ChargingStation) error {
	result := r.db.WithContext(ctx).Save(station)
	if result.Error != nil {
		r.log.Error("Failed to save charging station", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *StationRepository) FindByID(ctx context.Context, id string) (*domain.ChargingStation, error) {
	var station domain.ChargingStation
	result := r.db.WithContext(ctx).First(&station, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &station, nil
}

func (r *StationRepository) FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.ChargingStation, error) {
	var stations []domain.ChargingStation
	result := r.db.WithContext(ctx).Where("sub_project_id = ?", subProjectID).Find(&stations)
	if result.Error != nil {
		return nil, result.Error
	}
	return stations, nil
}

// FindByProjectID flattens every sub-project of the project into one station
// list, the shape the aggregator feeds downstream.
func (r *StationRepository) FindByProjectID(ctx context.Context, projectID string) ([]domain.ChargingStation, error) {
	var stations []domain.ChargingStation
	result := r.db.WithContext(ctx).
		Joins("JOIN sub_projects ON sub_projects.id = charging_stations.sub_project_id").
		Where("sub_projects.project_id = ?", projectID).
		Find(&stations)
	if result.Error != nil {
		return nil, result.Error
	}
	return stations, nil
}

func (r *StationRepository) FindAll(ctx context.Context) ([]domain.ChargingStation, error) {
	var stations []domain.ChargingStation
	result := r.db.WithContext(ctx).Find(&stations)
	if result.Error != nil {
		return nil, result.Error
	}
	return stations, nil
}

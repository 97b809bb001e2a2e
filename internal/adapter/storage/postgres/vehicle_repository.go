package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

type VehicleProfileRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVehicleProfileRepository(db *gorm.DB, log *zap.Logger) ports.VehicleProfileRepository {
	return &VehicleProfileRepository{db: db, log: log}
}

func (r *VehicleProfileRepository) Save(ctx context.Context, profile *domain.VehicleTypeProfile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		r.log.Error("Failed to save vehicle profile", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *VehicleProfileRepository) FindAll(ctx context.Context) ([]domain.VehicleTypeProfile, error) {
	var profiles []domain.VehicleTypeProfile
	result := r.db.WithContext(ctx).Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

type PVInstallationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPVInstallationRepository(db *gorm.DB, log *zap.Logger) ports.PVInstallationRepository {
	return &PVInstallationRepository{db: db, log: log}
}

func (r *PVInstallationRepository) Save(ctx context.Context, pv *domain.PVInstallation) error {
	result := r.db.WithContext(ctx).Save(pv)
	if result.Error != nil {
		r.log.Error("Failed to save PV installation", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *PVInstallationRepository) FindBySubProjectID(ctx context.Context, subProjectID string) ([]domain.PVInstallation, error) {
	var installations []domain.PVInstallation
	result := r.db.WithContext(ctx).Where("sub_project_id = ?", subProjectID).Find(&installations)
	if result.Error != nil {
		return nil, result.Error
	}
	return installations, nil
}

func (r *PVInstallationRepository) FindByProjectID(ctx context.Context, projectID string) ([]domain.PVInstallation, error) {
	var installations []domain.PVInstallation
	result := r.db.WithContext(ctx).
		Joins("JOIN sub_projects ON sub_projects.id = pv_installations.sub_project_id").
		Where("sub_projects.project_id = ?", projectID).
		Find(&installations)
	if result.Error != nil {
		return nil, result.Error
	}
	return installations, nil
}

func (r *PVInstallationRepository) FindAll(ctx context.Context) ([]domain.PVInstallation, error) {
	var installations []domain.PVInstallation
	result := r.db.WithContext(ctx).Find(&installations)
	if result.Error != nil {
		return nil, result.Error
	}
	return installations, nil
}

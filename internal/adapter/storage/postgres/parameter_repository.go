package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

type ParameterRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewParameterRepository(db *gorm.DB, log *zap.Logger) ports.ParameterRepository {
	return &ParameterRepository{db: db, log: log}
}

func (r *ParameterRepository) Save(ctx context.Context, params *domain.FinancialParameters) error {
	result := r.db.WithContext(ctx).Save(params)
	if result.Error != nil {
		r.log.Error("Failed to save financial parameters",
			zap.String("project_id", params.ProjectID),
			zap.Error(result.Error),
		)
		return result.Error
	}
	return nil
}

// FindByProjectID returns (nil, nil) when the project has no parameters yet.
// Lazy default creation is a service-layer decision, not a storage one.
func (r *ParameterRepository) FindByProjectID(ctx context.Context, projectID string) (*domain.FinancialParameters, error) {
	var params domain.FinancialParameters
	result := r.db.WithContext(ctx).First(&params, "project_id = ?", projectID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &params, nil
}

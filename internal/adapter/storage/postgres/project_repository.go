package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/ports"
)

type ProjectRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProjectRepository(db *gorm.DB, log *zap.Logger) ports.ProjectRepository {
	return &ProjectRepository{db: db, log: log}
}

func (r *ProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	result := r.db.WithContext(ctx).Save(project)
	if result.Error != nil {
		r.log.Error("Failed to save project", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	result := r.db.WithContext(ctx).First(&project, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &project, nil
}

func (r *ProjectRepository) FindSubProjectByID(ctx context.Context, id string) (*domain.SubProject, error) {
	var sp domain.SubProject
	result := r.db.WithContext(ctx).First(&sp, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &sp, nil
}

func (r *ProjectRepository) SaveSubProject(ctx context.Context, sp *domain.SubProject) error {
	result := r.db.WithContext(ctx).Save(sp)
	if result.Error != nil {
		r.log.Error("Failed to save sub-project", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

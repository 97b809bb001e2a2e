package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/evplan/internal/domain"
	"github.com/seu-repo/evplan/internal/observability/telemetry"
	"github.com/seu-repo/evplan/internal/ports"
)

type AnalysisRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAnalysisRepository(db *gorm.DB, log *zap.Logger) ports.AnalysisRepository {
	return &AnalysisRepository{db: db, log: log}
}

// ReplaceFinancial drops the previous analysis for the same scope and writes
// the new one with all its derived rows in a single transaction. A failed
// recompute therefore never leaves partial artifacts behind.
func (r *AnalysisRepository) ReplaceFinancial(ctx context.Context, analysis *domain.FinancialAnalysis) error {
	start := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []domain.FinancialAnalysis
		query := tx.Model(&domain.FinancialAnalysis{})
		switch {
		case analysis.ProjectID != nil:
			query = query.Where("project_id = ?", *analysis.ProjectID)
		case analysis.StationID != nil:
			query = query.Where("station_id = ?", *analysis.StationID)
		default:
			query = query.Where("project_id IS NULL AND station_id IS NULL")
		}
		if err := query.Find(&existing).Error; err != nil {
			return err
		}

		for i := range existing {
			if err := r.deleteFinancialChildren(tx, existing[i].ID); err != nil {
				return err
			}
			if err := tx.Delete(&domain.FinancialAnalysis{}, "id = ?", existing[i].ID).Error; err != nil {
				return err
			}
		}

		for i := range analysis.CashFlow {
			analysis.CashFlow[i].AnalysisID = analysis.ID
		}
		for i := range analysis.Loan {
			analysis.Loan[i].AnalysisID = analysis.ID
		}
		for i := range analysis.Failures {
			analysis.Failures[i].AnalysisID = analysis.ID
		}

		return tx.Create(analysis).Error
	})

	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		r.log.Error("Failed to replace financial analysis",
			zap.String("analysis_id", analysis.ID),
			zap.Error(err),
		)
	}
	return err
}

func (r *AnalysisRepository) deleteFinancialChildren(tx *gorm.DB, analysisID string) error {
	if err := tx.Delete(&domain.CashFlowPeriod{}, "analysis_id = ?", analysisID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&domain.LoanPeriod{}, "analysis_id = ?", analysisID).Error; err != nil {
		return err
	}
	return tx.Delete(&domain.FailurePeriod{}, "analysis_id = ?", analysisID).Error
}

func (r *AnalysisRepository) FindFinancialByProjectID(ctx context.Context, projectID string) (*domain.FinancialAnalysis, error) {
	return r.findFinancial(ctx, "project_id = ?", projectID)
}

func (r *AnalysisRepository) FindFinancialByStationID(ctx context.Context, stationID string) (*domain.FinancialAnalysis, error) {
	return r.findFinancial(ctx, "station_id = ?", stationID)
}

func (r *AnalysisRepository) findFinancial(ctx context.Context, cond string, arg string) (*domain.FinancialAnalysis, error) {
	var analysis domain.FinancialAnalysis
	result := r.db.WithContext(ctx).
		Preload("CashFlow").
		Preload("Loan").
		Preload("Failures").
		First(&analysis, cond, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &analysis, nil
}

func (r *AnalysisRepository) SaveEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error {
	result := r.db.WithContext(ctx).Omit("Years").Save(analysis)
	if result.Error != nil {
		r.log.Error("Failed to save environmental analysis", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// ReplaceEnvironmental rewrites the yearly rows and the aggregate record in
// one transaction.
func (r *AnalysisRepository) ReplaceEnvironmental(ctx context.Context, analysis *domain.EnvironmentalAnalysis) error {
	start := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.EnvironmentalYear{}, "analysis_id = ?", analysis.ID).Error; err != nil {
			return err
		}
		for i := range analysis.Years {
			analysis.Years[i].ID = 0
			analysis.Years[i].AnalysisID = analysis.ID
		}
		return tx.Save(analysis).Error
	})

	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		r.log.Error("Failed to replace environmental analysis",
			zap.String("analysis_id", analysis.ID),
			zap.Error(err),
		)
	}
	return err
}

func (r *AnalysisRepository) FindEnvironmentalByID(ctx context.Context, id string) (*domain.EnvironmentalAnalysis, error) {
	var analysis domain.EnvironmentalAnalysis
	result := r.db.WithContext(ctx).Preload("Years").First(&analysis, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &analysis, nil
}

package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seu-repo/evplan/internal/domain"
)

// NewConnection initializes a new PostgreSQL connection using GORM
func NewConnection(url string, logQueries bool, log *zap.Logger) (*gorm.DB, error) {
	logMode := logger.Warn
	if logQueries {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// RunMigrations creates or updates the schema for every entity and derived
// artifact. Derived tables are replaced wholesale per analysis run, so there
// is no data migration to worry about there.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Organization{},
		&domain.Project{},
		&domain.SubProject{},
		&domain.ChargingStation{},
		&domain.PVInstallation{},
		&domain.FinancialParameters{},
		&domain.FinancialAnalysis{},
		&domain.CashFlowPeriod{},
		&domain.LoanPeriod{},
		&domain.FailurePeriod{},
		&domain.EnvironmentalAnalysis{},
		&domain.EnvironmentalYear{},
		&domain.VehicleTypeProfile{},
	)
}

// Close releases the underlying sql.DB pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

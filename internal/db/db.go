package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/config"
	"github.com/tanyourpeach/tan-scheduler/internal/logging"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logging.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logging.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logging.L().Fatal("failed to migrate", zap.Error(err))
	}

	return db
}

// Migrate creates or updates the schema. Shared with package tests that run
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.TanService{},
		&models.Availability{},
		&models.Appointment{},
		&models.AppointmentStatusHistory{},
		&models.InventoryItem{},
		&models.ServiceInventoryUsage{},
		&models.Receipt{},
		&models.FinancialLog{},
		&models.AuditLog{},
	)
}

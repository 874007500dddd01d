package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/showcall/showcall-backend/internal/config"
	"github.com/showcall/showcall-backend/internal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for every model.
func Migrate() error {
	return DB.AutoMigrate(AllModels()...)
}

// AllModels lists every persisted model, shared with the test helpers.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.RoleGrant{},
		&models.TalentProfile{},
		&models.BusinessAccount{},
		&models.CalendarEvent{},
		&models.EventTravel{},
		&models.EventHotel{},
		&models.EventTransport{},
		&models.EventContact{},
		&models.Product{},
		&models.ContentBlock{},
		&models.ActivityLog{},
		&models.SecurityEvent{},
		&models.LoginRecord{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.SystemLog{},
	}
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

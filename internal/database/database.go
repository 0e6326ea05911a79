package database

import (
	"fmt"

	"github.com/lewis-Dimun/green-fashion-score/internal/config"
	"github.com/lewis-Dimun/green-fashion-score/internal/logging"
	"github.com/lewis-Dimun/green-fashion-score/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the postgres connection and runs migrations. The returned
// handle is the one shared database connection for the process.
func Init(log *zap.Logger) (*gorm.DB, error) {
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully.")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully.")

	return db, nil
}

// Migrate creates or updates the schema for all survey models. GORM's
// AutoMigrate handles tables, columns, foreign keys and the declared
// unique indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Pillar{},
		&models.Question{},
		&models.Option{},
		&models.Response{},
		&models.SurveyResult{},
		&models.FashionScore{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

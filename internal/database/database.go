package database

import (
	"log"
	"time"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/config"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func Connect(cfg *config.Config) (*DB, error) {
	logLevel := logger.Silent
	if cfg.ServerEnv == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	// Register metrics plugin for Prometheus
	if err := db.Use(&MetricsPlugin{}); err != nil {
		log.Printf("Failed to register metrics plugin: %v", err)
	} else {
		log.Println("Database metrics plugin registered")
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(300 * time.Second)
		log.Println("Database connection pool configured")
	}

	return &DB{db}, nil
}

// Migrate enables the required extensions and runs AutoMigrate for all
// models. Errors are logged but not fatal - a managed database may refuse
// CREATE EXTENSION while already providing it.
func Migrate(db *DB) error {
	// PostGIS for the geography columns, pgcrypto for gen_random_uuid on
	// older Postgres versions
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		log.Printf("postgis extension warning (non-fatal): %v", err)
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.Printf("pgcrypto extension warning (non-fatal): %v", err)
	}

	err := db.AutoMigrate(
		&models.Disaster{},
		&models.Report{},
		&models.Resource{},

		// Cache
		&models.VerificationCache{},
	)
	if err != nil {
		log.Printf("AutoMigrate warning (non-fatal): %v", err)
	}

	// Spatial index for the nearby-resource proximity query
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_resources_location ON resources USING GIST (location)",
	).Error; err != nil {
		log.Printf("spatial index warning (non-fatal): %v", err)
	}

	return nil
}

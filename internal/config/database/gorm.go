package database

import (
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDialector is swapped in tests to run GORM on top of sqlmock.
var openDialector = func(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// NewDatabase opens the PostgreSQL connection backing the permission audit log.
func NewDatabase(log *logrus.Logger, config *env.Config) *gorm.DB {
	db, err := gorm.Open(openDialector(config.Database.DSN), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             time.Second * 5,
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			LogLevel:                  logger.LogLevel(config.Database.Log.Level),
		}),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		log.WithError(err).Warn("failed to register otelgorm plugin")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get database instance")
	}

	// Configure connection pooling
	sqlDB.SetMaxIdleConns(config.Database.Pool.Idle)
	sqlDB.SetMaxOpenConns(config.Database.Pool.Max)
	sqlDB.SetConnMaxLifetime(time.Duration(config.Database.Pool.Lifetime) * time.Second)

	log.Info("Database connection established successfully")
	return db
}

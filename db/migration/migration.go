package migration

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"

	"github.com/sirupsen/logrus"
)

// Migrator is the part of *gorm.DB that schema migration needs.
type Migrator interface {
	AutoMigrate(dst ...interface{}) error
}

// Models lists every table this service owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&model.PermissionAudit{},
	}
}

// Up brings the schema in line with the GORM models.
func Up(log *logrus.Logger, db Migrator) error {
	log.Info("Starting database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		log.WithError(err).Error("Failed to run migrations")
		return err
	}

	log.Info("Database migrations completed successfully")
	return nil
}

package main

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/db/migration"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/database"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/logger"

	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to config.yml")
	pflag.Parse()

	config := env.NewConfig(*configFile)
	log := logger.NewLogger(config)
	db := database.NewDatabase(log, config)

	if err := migration.Up(log, db); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
}

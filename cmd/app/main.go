package main

import (
	app "github.com/Harsh28r/DeltaFrontend-sub002/internal"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/database"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/logger"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/monitor"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/redis"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/validation"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/web"

	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to config.yml")
	pflag.Parse()

	config := env.NewConfig(*configFile)
	log := logger.NewLogger(config)
	web := web.NewFiber(log, config)
	redis := redis.NewRedis(log, config)
	db := database.NewDatabase(log, config)
	monitoring := monitor.NewMonitoring(log, config)
	validation := validation.NewValidation()
	defer monitoring.Shutdown()

	server := app.NewApp(log, config, db, web, validation, redis)
	server.Run()
}

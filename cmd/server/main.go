package main

import (
	"gatherly/internal/app"
	"gatherly/pkg/config"
	"gatherly/pkg/logger"
)

// @title           Gatherly API
// @version         1.0
// @description     Event and community platform with realtime notifications.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if err := app.Run(cfg, log); err != nil {
		log.Error("Application failed: %v", err)
		panic(err)
	}
}

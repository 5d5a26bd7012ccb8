package main

import (
	"mesa/config"
	"mesa/di"
	"mesa/shared/logger"
)

// @title Mesa API
// @version 1.0
// @description Restaurant table reservation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	app.Tasks.Start()

	app.HTTP.Serve()
}

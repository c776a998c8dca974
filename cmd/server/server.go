package main

import (
	"context"

	"github.com/mileusna/crontab"

	"polydoc.ai/translate-api-gateway/app/domain/maintenance"
	infrainference "polydoc.ai/translate-api-gateway/app/infrastructure/inference"
	"polydoc.ai/translate-api-gateway/app/interfaces/http"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

type Application struct {
	HttpServer         *http.HttpServer
	MaintenanceService *maintenance.MaintenanceCrontabService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	infrainference.Init()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	cron := crontab.New()
	application.MaintenanceService.Start(context.Background(), cron)
	application.Start()
}

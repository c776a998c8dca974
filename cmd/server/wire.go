//go:build wireinject

package main

import (
	"github.com/google/wire"

	"polydoc.ai/translate-api-gateway/app/domain"
	"polydoc.ai/translate-api-gateway/app/infrastructure"
	"polydoc.ai/translate-api-gateway/app/interfaces/http"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

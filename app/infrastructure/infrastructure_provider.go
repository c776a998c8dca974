package infrastructure

import (
	"github.com/google/wire"

	inferenceDomain "polydoc.ai/translate-api-gateway/app/domain/inference"
	"polydoc.ai/translate-api-gateway/app/infrastructure/inference"
	"polydoc.ai/translate-api-gateway/app/infrastructure/redisclient"
)

var InfrastructureProvider = wire.NewSet(
	redisclient.NewClient,
	inference.NewOpenAIProvider,
	wire.Bind(new(inferenceDomain.TranslationProvider), new(*inference.OpenAIProvider)),
)

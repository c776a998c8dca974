package routes

import (
	"github.com/google/wire"

	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/auth"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/system"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/translate"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	translate.NewTranslateRoute,
	system.NewSystemRoute,
	api.NewApiRoute,
)

package api

import (
	"github.com/gin-gonic/gin"

	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/auth"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/system"
	"polydoc.ai/translate-api-gateway/app/interfaces/http/routes/api/translate"
)

// ApiRoute groups every public route at the root path.
type ApiRoute struct {
	authRoute      *auth.AuthRoute
	translateRoute *translate.TranslateRoute
	systemRoute    *system.SystemRoute
}

func NewApiRoute(authRoute *auth.AuthRoute, translateRoute *translate.TranslateRoute, systemRoute *system.SystemRoute) *ApiRoute {
	return &ApiRoute{
		authRoute:      authRoute,
		translateRoute: translateRoute,
		systemRoute:    systemRoute,
	}
}

func (apiRoute *ApiRoute) RegisterRouter(router gin.IRouter) {
	apiRoute.authRoute.RegisterRouter(router)
	apiRoute.translateRoute.RegisterRouter(router)
	apiRoute.systemRoute.RegisterRouter(router)
}
